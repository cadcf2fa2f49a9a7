package metrics

import (
	"errors"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// ErrLength indicates true and predicted labels of different lengths.
var ErrLength = errors.New("metrics: true and predicted label counts differ")

// Confusion counts predictions per (true class, predicted class) pair.
type Confusion struct {
	Classes []string
	Matrix  [][]int
}

// NewConfusion tallies pairs of true and predicted labels. Labels outside
// [0, len(classes)) are ignored.
func NewConfusion(classes []string, truth, predicted []int) (*Confusion, error) {
	if len(truth) != len(predicted) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLength, len(truth), len(predicted))
	}
	k := len(classes)
	m := make([][]int, k)
	for i := range m {
		m[i] = make([]int, k)
	}
	for i, t := range truth {
		p := predicted[i]
		if t < 0 || t >= k || p < 0 || p >= k {
			continue
		}
		m[t][p]++
	}
	return &Confusion{Classes: classes, Matrix: m}, nil
}

// Total returns the number of counted pairs.
func (c *Confusion) Total() int {
	total := 0
	for _, row := range c.Matrix {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// Accuracy returns the fraction of pairs on the diagonal.
func (c *Confusion) Accuracy() float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	hits := 0
	for i := range c.Matrix {
		hits += c.Matrix[i][i]
	}
	return float64(hits) / float64(total)
}

// Support returns the number of true samples of class k.
func (c *Confusion) Support(k int) int {
	n := 0
	for _, v := range c.Matrix[k] {
		n += v
	}
	return n
}

// Precision returns TP / (TP + FP) for class k, or 0 when nothing was
// predicted as k.
func (c *Confusion) Precision(k int) float64 {
	predicted := 0
	for i := range c.Matrix {
		predicted += c.Matrix[i][k]
	}
	if predicted == 0 {
		return 0
	}
	return float64(c.Matrix[k][k]) / float64(predicted)
}

// Recall returns TP / (TP + FN) for class k.
func (c *Confusion) Recall(k int) float64 {
	support := c.Support(k)
	if support == 0 {
		return 0
	}
	return float64(c.Matrix[k][k]) / float64(support)
}

// F1 returns the harmonic mean of precision and recall for class k.
func (c *Confusion) F1(k int) float64 {
	p, r := c.Precision(k), c.Recall(k)
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// Write renders the row-normalised confusion matrix followed by the per-class
// precision, recall and F1 table.
func (c *Confusion) Write(w io.Writer) error {
	if len(c.Classes) == 0 {
		return nil
	}
	t := table.NewWriter()
	t.SetTitle("Confusion Matrix")
	header := table.Row{""}
	for _, name := range c.Classes {
		header = append(header, name)
	}
	t.AppendHeader(header)
	for i, name := range c.Classes {
		row := table.Row{name}
		support := c.Support(i)
		for j := range c.Classes {
			if support == 0 {
				row = append(row, "")
				continue
			}
			row = append(row, fmt.Sprintf("%6.2f%%", float64(c.Matrix[i][j])/float64(support)*100))
		}
		t.AppendRow(row)
	}
	footer := table.Row{"ACCURACY"}
	for range c.Classes[1:] {
		footer = append(footer, "")
	}
	footer = append(footer, fmt.Sprintf("%0.02f%%", c.Accuracy()*100))
	t.AppendFooter(footer)
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return fmt.Errorf("metrics: write confusion matrix: %w", err)
	}

	t = table.NewWriter()
	t.SetTitle("Class Metrics")
	t.AppendHeader(table.Row{"CLASS", "PRECISION", "RECALL", "F1 SCORE", "SAMPLES"})
	for i, name := range c.Classes {
		t.AppendRow(table.Row{
			name,
			fmt.Sprintf("%6.2f%%", c.Precision(i)*100),
			fmt.Sprintf("%6.2f%%", c.Recall(i)*100),
			fmt.Sprintf("%6.2f%%", c.F1(i)*100),
			fmt.Sprintf("%d", c.Support(i)),
		})
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return fmt.Errorf("metrics: write class metrics: %w", err)
	}
	return nil
}
