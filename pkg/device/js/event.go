package js

// event is the wire layout of struct js_event.
type event struct {
	Time   uint32
	Value  int16
	Type   uint8
	Number uint8
}

const (
	evBTN  uint8 = 0x01
	evAXIS uint8 = 0x02
	evINIT uint8 = 0x80
)

func (e *event) IsInit() bool { return e.Type&evINIT != 0 }
func (e *event) Index() int   { return int(e.Number) }

type buttonEvent struct {
	event
}

func (e *buttonEvent) Pressed() bool { return e.Value != 0 }
