package simplify

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Simplifier упрощает подачу текста: одно предложение на строку и подсветка длинных слов.
type Simplifier struct {
	minLen int
}

// New создаёт упроститель. Слова длиной от minLen букв считаются сложными.
func New(minLen int) *Simplifier {
	if minLen <= 0 {
		minLen = 9
	}
	return &Simplifier{minLen: minLen}
}

// Simplify нормализует пробелы и выводит каждое предложение с новой строки.
// Абзацы (пустые строки во входе) сохраняются.
func (s *Simplifier) Simplify(text string) string {
	paragraphs := splitParagraphs(text)
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		out = append(out, strings.Join(sentences(strings.Join(strings.Fields(p), " ")), "\n"))
	}
	return strings.Join(out, "\n\n")
}

// HighlightDifficult экранирует текст и оборачивает сложные слова в <mark class="difficult">.
func (s *Simplifier) HighlightDifficult(text string) string {
	var b strings.Builder
	word := make([]rune, 0, 32)
	flush := func() {
		if len(word) == 0 {
			return
		}
		w := html.EscapeString(string(word))
		if s.IsDifficult(string(word)) {
			b.WriteString(`<mark class="difficult">`)
			b.WriteString(w)
			b.WriteString(`</mark>`)
		} else {
			b.WriteString(w)
		}
		word = word[:0]
	}
	for _, r := range text {
		if isWordRune(r) {
			word = append(word, r)
			continue
		}
		flush()
		b.WriteString(html.EscapeString(string(r)))
	}
	flush()
	return b.String()
}

// IsDifficult — слово длиной от minLen букв (апострофы и дефисы не считаются).
func (s *Simplifier) IsDifficult(word string) bool {
	n := 0
	for _, r := range word {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n >= s.minLen
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '-' || r == '’'
}

func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	raw := strings.Split(text, "\n\n")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// sentences режет строку после . ! ? (и их серий), за которыми следует пробел.
func sentences(line string) []string {
	var out []string
	start := 0
	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		i += size
		if r != '.' && r != '!' && r != '?' && r != '…' {
			continue
		}
		// серия знаков: "?!", "..."
		for i < len(line) {
			next, sz := utf8.DecodeRuneInString(line[i:])
			if next != '.' && next != '!' && next != '?' && next != '…' && next != '"' && next != ')' {
				break
			}
			i += sz
		}
		if i < len(line) && line[i] == ' ' {
			out = append(out, line[start:i])
			start = i + 1
		}
	}
	if start < len(line) {
		out = append(out, line[start:])
	}
	return out
}
