package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"radarchart/internal/radar"
)

// ErrEmptyChart is returned by exporters that need at least one axis and
// one series.
var ErrEmptyChart = errors.New("chart has no axes or no series")

const echartsCDN = "https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"

// ChartSnippet represents an embeddable ECharts fragment.
// Div holds the root <div>, Script the <script> initialising it, and HTML
// both combined with the library include.
type ChartSnippet struct {
	ID     string
	Title  string
	Div    string
	Script string
	HTML   string
}

func checkPlottable(c *radar.Chart) error {
	if len(c.Labels()) == 0 || len(c.Series()) == 0 {
		return ErrEmptyChart
	}
	return nil
}

// indicatorMax is the shared scale ceiling; ECharts needs it positive.
func indicatorMax(c *radar.Chart) float64 {
	if m := c.MaxValue(); m > 0 {
		return m
	}
	return 1
}

// RadarSnippet builds an interactive ECharts radar mirroring the chart.
func RadarSnippet(c *radar.Chart, id, title string) (ChartSnippet, error) {
	if err := checkPlottable(c); err != nil {
		return ChartSnippet{}, err
	}

	ceiling := indicatorMax(c)
	indicators := make([]interface{}, 0, len(c.Labels()))
	for _, label := range c.Labels() {
		indicators = append(indicators, map[string]interface{}{"name": label, "max": ceiling})
	}

	var names []string
	data := make([]interface{}, 0, len(c.Series()))
	for _, s := range c.Series() {
		names = append(names, s.Name)
		data = append(data, map[string]interface{}{
			"name":      s.Name,
			"value":     s.Values,
			"itemStyle": map[string]interface{}{"color": s.Color},
			"areaStyle": map[string]interface{}{"opacity": c.Config().FillOpacity},
		})
	}

	option := map[string]interface{}{
		"title": map[string]interface{}{
			"text": title,
			"left": "center",
		},
		"tooltip": map[string]interface{}{},
		"legend": map[string]interface{}{
			"data":   names,
			"bottom": 0,
		},
		"radar": map[string]interface{}{
			"indicator":   indicators,
			"shape":       "polygon",
			"splitNumber": c.Config().RingCount,
		},
		"series": []interface{}{
			map[string]interface{}{
				"type": "radar",
				"data": data,
			},
		},
	}

	optJSON, err := json.Marshal(option)
	if err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to marshal radar option: %w", err)
	}

	div := fmt.Sprintf("<div id=\"%s\" style=\"width:100%%;height:%dpx;\"></div>", id, int(c.Layout().Height))
	script := fmt.Sprintf(`<script>(function(){var el=document.getElementById('%s');if(!el)return;var c=echarts.init(el);var option=%s;c.setOption(option);window.addEventListener('resize',function(){c.resize();});})();</script>`, id, string(optJSON))
	completeHTML := fmt.Sprintf(`<script src="%s"></script>
<div class="chart-container">
	<h3>%s</h3>
	%s
</div>
%s`, echartsCDN, html.EscapeString(title), div, script)

	return ChartSnippet{ID: id, Title: title, Div: div, Script: script, HTML: completeHTML}, nil
}

// RadarPage writes a standalone interactive radar page using go-echarts.
func RadarPage(c *radar.Chart, title string, w io.Writer) error {
	if err := checkPlottable(c); err != nil {
		return err
	}

	ceiling := float32(indicatorMax(c))
	indicators := make([]*opts.Indicator, 0, len(c.Labels()))
	for _, label := range c.Labels() {
		indicators = append(indicators, &opts.Indicator{Name: label, Max: ceiling})
	}

	layout := c.Layout()
	rc := charts.NewRadar()
	rc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     fmt.Sprintf("%dpx", int(layout.Width)),
			Height:    fmt.Sprintf("%dpx", int(layout.Height)),
		}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: true,
		}),
		charts.WithRadarComponentOpts(opts.RadarComponent{
			Indicator:   indicators,
			Shape:       "polygon",
			SplitNumber: c.Config().RingCount,
		}),
	)

	for _, s := range c.Series() {
		rc.AddSeries(s.Name,
			[]opts.RadarData{{Name: s.Name, Value: s.Values}},
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
		)
	}

	if err := rc.Render(w); err != nil {
		return fmt.Errorf("failed to render radar page: %w", err)
	}
	return nil
}
