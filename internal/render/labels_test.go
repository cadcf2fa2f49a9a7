package render

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestNewLabelsEnglishDefault(t *testing.T) {
	l, err := NewLabels("", 3)
	require.NoError(t, err)
	require.Equal(t, language.English, l.Tag)
	require.Equal(t, []string{"Class 1", "Class 2", "Class 3"}, l.Classes)
	require.Equal(t, "Feature 1", l.XLabel)
	require.Len(t, l.Title, 2)
	require.Len(t, l.Note, 3)
}

func TestNewLabelsChinese(t *testing.T) {
	l, err := NewLabels("zh-Hans", 3)
	require.NoError(t, err)
	require.Equal(t, language.SimplifiedChinese, l.Tag)
	require.Equal(t, "类别 2", l.Classes[1])
	require.Equal(t, "特征 2", l.YLabel)
	require.Equal(t, "Softmax 回归的几何意义", l.Title[0])
}

func TestNewLabelsUnsupportedFallsBack(t *testing.T) {
	l, err := NewLabels("de", 2)
	require.NoError(t, err)
	require.Equal(t, language.English, l.Tag)
	require.Equal(t, []string{"Class 1", "Class 2"}, l.Classes)
}

func TestNewLabelsRejectsMalformedLocale(t *testing.T) {
	_, err := NewLabels("not a locale!", 3)
	require.Error(t, err)
}
