package md2pub

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// CodeThemeNames returns the syntax-highlighting style names accepted by
// WithCodeTheme, sorted for help output.
func CodeThemeNames() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// codeThemeFetchTimeout bounds the single remote stylesheet fetch.
const codeThemeFetchTimeout = 10 * time.Second

// resolveCodeThemeCSS produces the stylesheet for the configured code
// theme. A registered style name is rendered through the class-based
// formatter; an http(s) URL is fetched once. An unknown name is a
// configuration error; a failed fetch is reported through warn and
// degrades to no highlighting CSS.
func resolveCodeThemeCSS(ctx context.Context, name string, warn Logger) (string, error) {
	if name == "" {
		return "", nil
	}
	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		css, err := fetchRemoteCSS(ctx, name)
		if err != nil {
			if warn != nil {
				warn("code theme fetch failed, continuing without highlighting CSS: %v", err)
			}
			return "", nil
		}
		return css, nil
	}

	style, ok := styles.Registry[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCodeTheme, name)
	}

	formatter := chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.PreventSurroundingPre(true),
	)
	var b strings.Builder
	if err := formatter.WriteCSS(&b, style); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCodeTheme, err)
	}
	return b.String(), nil
}

// maxRemoteCSSSize caps the remote stylesheet body at 5 MB.
const maxRemoteCSSSize = 5 << 20

func fetchRemoteCSS(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, codeThemeFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s fetching %s", resp.Status, url)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteCSSSize))
	if err != nil {
		return "", err
	}
	return string(body), nil
}
