package render

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	msgClass     = "Class %d"
	msgXLabel    = "Feature 1"
	msgYLabel    = "Feature 2"
	msgTitle     = "Geometry of Softmax Regression"
	msgSubtitle  = "(decision boundaries and class regions)"
	msgNoteLine1 = "The decision boundaries split the plane into regions"
	msgNoteLine2 = "Each region corresponds to one class"
	msgNoteLine3 = "Region boundaries are linear hyperplanes"
)

var supported = []language.Tag{language.English, language.SimplifiedChinese}

var translations = map[language.Tag]map[string]string{
	language.SimplifiedChinese: {
		msgClass:     "类别 %d",
		msgXLabel:    "特征 1",
		msgYLabel:    "特征 2",
		msgTitle:     "Softmax 回归的几何意义",
		msgSubtitle:  "（决策边界和分类区域）",
		msgNoteLine1: "决策边界将空间分成三个区域",
		msgNoteLine2: "每个区域对应一个类别",
		msgNoteLine3: "区域边界是线性超平面",
	},
}

// Labels holds every string drawn on the figure.
type Labels struct {
	Tag     language.Tag
	Classes []string
	XLabel  string
	YLabel  string
	Title   []string
	Note    []string
}

// NewLabels resolves the figure text for locale, falling back to English for
// unsupported languages.
func NewLabels(locale string, numClasses int) (Labels, error) {
	tag := language.English
	if locale != "" {
		parsed, err := language.Parse(locale)
		if err != nil {
			return Labels{}, fmt.Errorf("render: parse locale %q: %w", locale, err)
		}
		_, idx, _ := language.NewMatcher(supported).Match(parsed)
		tag = supported[idx]
	}

	cat, err := buildCatalog()
	if err != nil {
		return Labels{}, err
	}
	p := message.NewPrinter(tag, message.Catalog(cat))

	l := Labels{
		Tag:    tag,
		XLabel: p.Sprintf(msgXLabel),
		YLabel: p.Sprintf(msgYLabel),
		Title:  []string{p.Sprintf(msgTitle), p.Sprintf(msgSubtitle)},
		Note:   []string{p.Sprintf(msgNoteLine1), p.Sprintf(msgNoteLine2), p.Sprintf(msgNoteLine3)},
	}
	for k := 0; k < numClasses; k++ {
		l.Classes = append(l.Classes, p.Sprintf(msgClass, k+1))
	}
	return l, nil
}

// Strings returns every label in drawing order.
func (l Labels) Strings() []string {
	out := append([]string{}, l.Classes...)
	out = append(out, l.XLabel, l.YLabel)
	out = append(out, l.Title...)
	return append(out, l.Note...)
}

func buildCatalog() (catalog.Catalog, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("render: catalog %s %q: %w", tag, key, err)
			}
		}
	}
	return b, nil
}
