package message

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/taoyao-code/meshmsg/internal/mesh/opcode"
)

// Event 组装成功事件（旁路通知，不影响组装结果）
type Event struct {
	Opcode     opcode.Opcode
	AID        byte
	Parameters []byte
}

// Observer 组装事件观察者
type Observer interface {
	OnAssembled(Event)
}

// ObserverFunc 函数适配器
type ObserverFunc func(Event)

func (f ObserverFunc) OnAssembled(e Event) { f(e) }

type observerHolder struct{ o Observer }

var observer atomic.Pointer[observerHolder]

// SetObserver 设置全局观察者，传 nil 取消
func SetObserver(o Observer) {
	if o == nil {
		observer.Store(nil)
		return
	}
	observer.Store(&observerHolder{o: o})
}

func notify(a *Assembled) {
	h := observer.Load()
	if h == nil {
		return
	}
	// 观察者异常不影响组装结果，但要留下记录
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("assembly observer panicked",
				zap.String("opcode", a.Opcode.String()),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()
	h.o.OnAssembled(Event{
		Opcode:     a.Opcode,
		AID:        a.AID,
		Parameters: append([]byte(nil), a.Parameters...),
	})
}
