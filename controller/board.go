package controller

// Button 触摸按键编号
type Button int

const (
	Touch0 Button = iota
	Touch1
	Touch2
	Touch3
	Touch4

	NumButtons = 5
)

// 按键布局：TOUCH0=上 TOUCH1=下 TOUCH2=左 TOUCH3=右 TOUCH4=炸弹
const (
	BtnUp    = Touch0
	BtnDown  = Touch1
	BtnLeft  = Touch2
	BtnRight = Touch3
	BtnBomb  = Touch4
)

// Board 控制面板硬件：Update 后读取本帧状态
type Board interface {
	Update()
	Touching(b Button) bool  // 电平：按住期间为 true
	TouchDown(b Button) bool // 边沿：仅在按下的那一帧为 true
	Gesture() (Direction, bool)
}

// touchState 由原始按键电平推导边沿
// tapped 记录两次 Update 之间出现过的按下，避免快速点按丢失
type touchState struct {
	raw    [NumButtons]bool
	tapped [NumButtons]bool

	cur  [NumButtons]bool
	prev [NumButtons]bool
	edge [NumButtons]bool
}

func (t *touchState) set(b Button, down bool) {
	if b < 0 || b >= NumButtons {
		return
	}
	if down && !t.raw[b] {
		t.tapped[b] = true
	}
	t.raw[b] = down
}

func (t *touchState) update() {
	t.prev = t.cur
	for i := range t.raw {
		t.cur[i] = t.raw[i] || t.tapped[i]
		t.edge[i] = t.tapped[i] || (t.cur[i] && !t.prev[i])
		t.tapped[i] = false
	}
}

func (t *touchState) touching(b Button) bool {
	return b >= 0 && b < NumButtons && t.cur[b]
}

func (t *touchState) touchDown(b Button) bool {
	return b >= 0 && b < NumButtons && t.edge[b]
}
