package gateway

// clientMessage is any message a client sends.
type clientMessage struct {
	Type   string  `json:"type"` // move | drop | strike | cmd
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Item   string  `json:"item"`
	Count  int32   `json:"count"`
	Target uint32  `json:"target"`
	Damage int32   `json:"damage"`
	Text   string  `json:"text"`
}

type welcomeMessage struct {
	Type     string `json:"type"` // welcome
	Slot     int    `json:"slot"`
	ObjectID uint32 `json:"id"`
	HP       int32  `json:"hp"`
	MaxHP    int32  `json:"max_hp"`
}

type stateMessage struct {
	Type  string `json:"type"` // state
	HP    int32  `json:"hp"`
	MaxHP int32  `json:"max_hp"`
}

type textMessage struct {
	Type string `json:"type"` // message
	Text string `json:"text"`
}

type dropResultMessage struct {
	Type      string `json:"type"` // drop
	Item      string `json:"item"`
	ObjectID  uint32 `json:"id,omitempty"`
	Cancelled bool   `json:"cancelled"`
}

type npcMessage struct {
	Type     string `json:"type"` // npc
	ObjectID uint32 `json:"id"`
	HP       int32  `json:"hp"`
	MaxHP    int32  `json:"max_hp"`
}

type npcRemovedMessage struct {
	Type     string `json:"type"` // npc_removed
	ObjectID uint32 `json:"id"`
}

type strikeResultMessage struct {
	Type      string `json:"type"` // strike
	Target    uint32 `json:"target"`
	Cancelled bool   `json:"cancelled"`
}
