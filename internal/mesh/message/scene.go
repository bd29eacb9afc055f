package message

import "github.com/taoyao-code/meshmsg/internal/mesh/opcode"

// Scene Server 场景编号 2字节小端，协议范围 0x0000-0xFFFF

type sceneNumber struct {
	base
	scene int
}

// SceneNumber 场景编号
func (m *sceneNumber) SceneNumber() uint16 { return uint16(m.scene) }

func (m *sceneNumber) Fields() []Field {
	return []Field{U16("scene", int64(m.scene))}
}

// SceneStore 将当前状态保存为场景（需要 Scene Register Status 应答）
type SceneStore struct{ sceneNumber }

func (*SceneStore) Opcode() opcode.Opcode { return opcode.SceneStore }

// NewSceneStore 构造 Scene Store 消息
func NewSceneStore(appKey []byte, scene int) (*SceneStore, error) {
	m := &SceneStore{sceneNumber{scene: scene}}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

// SceneStoreUnacknowledged 将当前状态保存为场景，不需要应答
type SceneStoreUnacknowledged struct{ sceneNumber }

func (*SceneStoreUnacknowledged) Opcode() opcode.Opcode { return opcode.SceneStoreUnacknowledged }

// NewSceneStoreUnacknowledged 构造 Scene Store Unacknowledged 消息
// 参数: [场景号2B LE]
func NewSceneStoreUnacknowledged(appKey []byte, scene int) (*SceneStoreUnacknowledged, error) {
	m := &SceneStoreUnacknowledged{sceneNumber{scene: scene}}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

// SceneDelete 删除已保存的场景
type SceneDelete struct{ sceneNumber }

func (*SceneDelete) Opcode() opcode.Opcode { return opcode.SceneDelete }

func NewSceneDelete(appKey []byte, scene int) (*SceneDelete, error) {
	m := &SceneDelete{sceneNumber{scene: scene}}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

type SceneDeleteUnacknowledged struct{ sceneNumber }

func (*SceneDeleteUnacknowledged) Opcode() opcode.Opcode { return opcode.SceneDeleteUnacknowledged }

func NewSceneDeleteUnacknowledged(appKey []byte, scene int) (*SceneDeleteUnacknowledged, error) {
	m := &SceneDeleteUnacknowledged{sceneNumber{scene: scene}}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

// sceneRecall 参数: [场景号2B LE][TID 1B]{[TransitionTime 1B][Delay 1B]}
type sceneRecall struct {
	base
	transactional
	scene int
}

func (m *sceneRecall) SceneNumber() uint16 { return uint16(m.scene) }

func (m *sceneRecall) validate() error { return m.transition.validate() }

func (m *sceneRecall) Fields() []Field {
	return append([]Field{U16("scene", int64(m.scene))}, m.tail()...)
}

func newSceneRecall(scene, tid int, t *Transition) sceneRecall {
	return sceneRecall{transactional: transactional{tid: tid, transition: copyTransition(t)}, scene: scene}
}

// SceneRecall 回放场景（需要 Scene Status 应答）
type SceneRecall struct{ sceneRecall }

func (*SceneRecall) Opcode() opcode.Opcode { return opcode.SceneRecall }

func NewSceneRecall(appKey []byte, scene, tid int, t *Transition) (*SceneRecall, error) {
	m := &SceneRecall{newSceneRecall(scene, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

// SceneRecallUnacknowledged 回放场景，不需要应答
type SceneRecallUnacknowledged struct{ sceneRecall }

func (*SceneRecallUnacknowledged) Opcode() opcode.Opcode { return opcode.SceneRecallUnacknowledged }

func NewSceneRecallUnacknowledged(appKey []byte, scene, tid int, t *Transition) (*SceneRecallUnacknowledged, error) {
	m := &SceneRecallUnacknowledged{newSceneRecall(scene, tid, t)}
	if err := m.assemble(appKey, m); err != nil {
		return nil, err
	}
	return m, nil
}
