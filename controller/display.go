package controller

import "strings"

// Color 显示颜色
type Color string

const (
	ColorWhite  Color = "white"
	ColorYellow Color = "yellow"
	ColorRed    Color = "red"
	ColorGreen  Color = "green"
)

// Line 一行文字及其光标位置
type Line struct {
	Text string `json:"text"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// Frame 一屏状态文字：清屏后按固定位置绘制
type Frame struct {
	Lines    []Line `json:"lines"`
	Color    Color  `json:"color"`
	TextSize int    `json:"textSize"`
}

// Text 拼接所有行，便于日志与测试
func (f Frame) Text() string {
	parts := make([]string, 0, len(f.Lines))
	for _, l := range f.Lines {
		parts = append(parts, l.Text)
	}
	return strings.Join(parts, " / ")
}

// Display 状态屏
type Display interface {
	Render(f Frame)
}

// ShowStatus 单行状态
func ShowStatus(d Display, msg string, c Color) {
	d.Render(Frame{
		Lines:    []Line{{Text: msg, X: 10, Y: 100}},
		Color:    c,
		TextSize: 2,
	})
}

// ShowStatus2 两行状态
func ShowStatus2(d Display, line1, line2 string, c Color) {
	d.Render(Frame{
		Lines:    []Line{{Text: line1, X: 10, Y: 80}, {Text: line2, X: 10, Y: 110}},
		Color:    c,
		TextSize: 2,
	})
}

// LogDisplay 把状态屏写入日志
type LogDisplay struct{}

func (LogDisplay) Render(f Frame) {
	Log.Infof("[DISPLAY] (%s) %s", f.Color, f.Text())
}

// MultiDisplay 同时渲染到多个屏
type MultiDisplay []Display

func (m MultiDisplay) Render(f Frame) {
	for _, d := range m {
		d.Render(f)
	}
}
