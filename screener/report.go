package screener

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// Report is the assembled daily screen: the avoid list, the focus list and
// the highest scored names, ready to render as text.
type Report struct {
	Date   time.Time
	Total  int
	Avoid  []Category
	Focus  []Category
	Ranked []Metrics
}

// BuildReport runs every screen over an already computed metrics slice.
// Scores are assigned as a side effect, matching how the screens are used
// from the command line.
func BuildReport(ms []Metrics, r Rules, date time.Time, topN int) Report {
	Score(ms, r)
	return Report{
		Date:   date,
		Total:  len(ms),
		Avoid:  Avoid(ms, r),
		Focus:  Focus(ms, r),
		Ranked: Top(ms, topN),
	}
}

// WriteText renders the report in the plain layout the daily notes use.
func (rp Report) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "转债筛选 %s  (%d只)\n", rp.Date.Format("2006-01-02"), rp.Total)

	fmt.Fprintln(w, "\n== 回避 ==")
	writeCategories(w, rp.Avoid)

	fmt.Fprintln(w, "\n== 关注 ==")
	writeCategories(w, rp.Focus)

	fmt.Fprintln(w, "\n== 评分前列 ==")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "代码\t名称\t现价\t溢价率\t剩余年限\t估值\t得分")
	for _, m := range rp.Ranked {
		fair := "-"
		if m.FairValue > 0 {
			fair = fmt.Sprintf("%.2f", m.FairValue)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f%%\t%.2f\t%s\t%d\n",
			m.Code, m.Name, m.Price.StringFixed(2), m.PremiumPct, m.YearsLeft, fair, m.Score)
	}
	return tw.Flush()
}

func writeCategories(w io.Writer, cats []Category) {
	for _, c := range cats {
		if len(c.Bonds) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s:\n", c.Name)
		for _, m := range c.Bonds {
			fmt.Fprintf(w, "  %s %s  现价%s 溢价%.2f%% 剩余%.2f年\n",
				m.Code, m.Name, m.Price.StringFixed(2), m.PremiumPct, m.YearsLeft)
		}
	}
}
