// Package sanitize готовит пользовательскую разметку к повторному показу:
// убирает inline-стили, чтобы они не перебивали шрифт и интервалы Output Surface.
package sanitize

import (
	"fmt"
	"strings"

	"github.com/k3a/html2text"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Разметка Input Surface разбирается как содержимое <div>, так же как её видит innerHTML.
func container() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
}

// StripStyles возвращает копию разметки без атрибута style у всех элементов,
// на любой глубине вложенности. Теги, порядок и текст сохраняются.
func StripStyles(markup string) (string, error) {
	return rewrite(markup, stripStyle)
}

// rewrite разбирает фрагмент, применяет fix к каждому узлу и собирает разметку обратно.
func rewrite(markup string, fix func(*html.Node)) (string, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), container())
	if err != nil {
		return "", fmt.Errorf("sanitize: parse fragment: %w", err)
	}

	var b strings.Builder
	for _, n := range nodes {
		walk(n, fix)
		if err := html.Render(&b, n); err != nil {
			return "", fmt.Errorf("sanitize: render: %w", err)
		}
	}
	return b.String(), nil
}

func walk(n *html.Node, fix func(*html.Node)) {
	fix(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fix)
	}
}

func stripStyle(n *html.Node) {
	if n.Type != html.ElementNode || len(n.Attr) == 0 {
		return
	}
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, "style") {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

// На видимый текст атрибуты не влияют, а href у <a> html2text подставил бы вместо текста ссылки.
func stripAttrs(n *html.Node) {
	if n.Type == html.ElementNode {
		n.Attr = nil
	}
}

// Text возвращает видимый текст разметки (аналог innerText): у ссылок читается их текст, а не адрес.
func Text(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}
	plain, err := rewrite(markup, stripAttrs)
	if err != nil {
		plain = markup
	}
	return strings.TrimSpace(html2text.HTML2TextWithOptions(plain, html2text.WithUnixLineBreaks()))
}
