package render

import (
	"fmt"
	"html"
	"strings"

	"CowsayNews/internal/domain"
)

// styleBlock is scoped to .cow-post so the fragment never leaks rules
// into the surrounding blog theme.
const styleBlock = `<style>
    .cow-post {
        max-width: 700px;
        margin: 2em auto;
        font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
        line-height: 1.6;
    }
    .cow-post .speech-bubble {
        background-color: #f8f9fa;
        border: 2px solid #dee2e6;
        border-radius: 15px;
        padding: 1.5em;
        position: relative;
        margin-bottom: 1.5em;
        box-shadow: 0 4px 12px rgba(0,0,0,0.05);
    }
    .cow-post .speech-bubble::after {
        content: '';
        position: absolute;
        bottom: -20px;
        left: 60px;
        border-width: 20px 20px 0 0;
        border-style: solid;
        border-color: #f8f9fa transparent transparent transparent;
        filter: drop-shadow(0 2px 0 #dee2e6);
        transform: rotate(15deg);
    }
    .cow-post h2 {
        font-size: 1.8em;
        margin-top: 0;
        color: #212529;
    }
    .cow-post h3 {
        font-size: 1.3em;
        border-bottom: 2px solid #e9ecef;
        padding-bottom: 5px;
        margin-top: 1.5em;
        color: #495057;
    }
    .cow-post .narrative {
        color: #343a40;
        font-style: italic;
    }
    .cow-post ul {
        list-style-type: none;
        padding-left: 0;
    }
    .cow-post li {
        margin-bottom: 0.8em;
        padding-left: 1.2em;
        position: relative;
    }
    .cow-post li::before {
        content: '🐮';
        position: absolute;
        left: 0;
        top: 0;
        font-size: 0.8em;
    }
    .cow-post a {
        text-decoration: none;
        font-weight: 500;
        color: #007bff;
    }
    .cow-post a:hover {
        text-decoration: underline;
    }
    .cow-post .source {
        font-size: 0.9em;
        color: #6c757d;
    }
    .cow-post .cow-art {
        font-family: monospace, monospace;
        font-size: 1em;
        color: #495057;
        line-height: 1.2;
        text-align: left;
        margin-left: 1em;
        white-space: pre;
    }
</style>`

const cowArt = `
    \   ^__^
     \  (oo)\_______
        (__)\       )\/\
            ||----w |
            ||     ||
`

// Document formats the classified groups and the optional narrative into
// one self-contained styled HTML fragment. Pure function of its inputs:
// no I/O, no clock, byte-identical output for identical arguments. Every
// upstream-supplied string is escaped before embedding.
func Document(grouped *domain.Grouped, narrative string) string {
	var parts []string

	parts = append(parts, styleBlock)
	parts = append(parts, `<div class="cow-post">`)
	parts = append(parts, `  <div class="speech-bubble">`)
	parts = append(parts, `    <h2>Moo-rning! Here's your daily US news summary...</h2>`)

	if narrative != "" {
		parts = append(parts, fmt.Sprintf(`    <p class="narrative">%s</p>`, html.EscapeString(narrative)))
	}

	for _, category := range domain.Categories() {
		items := grouped.Items(category)
		if len(items) == 0 {
			continue
		}

		parts = append(parts, fmt.Sprintf("    <h3>%s</h3>", html.EscapeString(strings.ToUpper(string(category)))))
		parts = append(parts, "    <ul>")
		for _, item := range items {
			parts = append(parts, "      <li>")
			parts = append(parts, fmt.Sprintf(`        <a href="%s" target="_blank">%s</a>`,
				html.EscapeString(item.URL), html.EscapeString(item.Headline)))
			parts = append(parts, fmt.Sprintf(`        <span class="source"> (%s)</span>`,
				html.EscapeString(item.Source)))
			parts = append(parts, "      </li>")
		}
		parts = append(parts, "    </ul>")
	}

	parts = append(parts, `  </div>`)
	parts = append(parts, fmt.Sprintf(`  <pre class="cow-art">%s</pre>`, html.EscapeString(cowArt)))
	parts = append(parts, `</div>`)

	return strings.Join(parts, "\n")
}
