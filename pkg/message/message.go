// Package message defines the transport-agnostic outbound message objects the
// conversation core produces. The messaging-platform adapter translates these
// into its wire format; the core and its tests only ever see these values.
package message

// Message is implemented by every outbound message object. The set is closed:
// Text, Confirm, Buttons, Carousel and Card.
type Message interface {
	isMessage()
}

// Action is a single labeled interactive action. Exactly one of Postback or
// URI is set: Postback carries an opaque payload the next turn can decode,
// URI opens an external link.
type Action struct {
	Label    string `json:"label"`
	Postback string `json:"postback,omitempty"`
	URI      string `json:"uri,omitempty"`
}

// Text is a plain text message.
type Text struct {
	Text string `json:"text"`
}

// Confirm is a binary prompt with exactly two labeled actions.
type Confirm struct {
	AltText string    `json:"altText"`
	Text    string    `json:"text"`
	Actions [2]Action `json:"actions"`
}

// Buttons is a button menu: prompt text plus up to four labeled actions.
type Buttons struct {
	AltText string   `json:"altText"`
	Title   string   `json:"title,omitempty"`
	Text    string   `json:"text"`
	Actions []Action `json:"actions"`
}

// CarouselColumn is one card of a carousel with a single action.
type CarouselColumn struct {
	Text   string `json:"text"`
	Action Action `json:"action"`
}

// Carousel is a horizontally scrollable list of 2 to 10 columns.
type Carousel struct {
	AltText string           `json:"altText"`
	Columns []CarouselColumn `json:"columns"`
}

// Card is a rich card with a highlighted header, body paragraphs and a footer
// action.
type Card struct {
	AltText string   `json:"altText"`
	Header  string   `json:"header"`
	Body    []string `json:"body"`
	Footer  Action   `json:"footer"`
}

func (Text) isMessage()     {}
func (Confirm) isMessage()  {}
func (Buttons) isMessage()  {}
func (Carousel) isMessage() {}
func (Card) isMessage()     {}
