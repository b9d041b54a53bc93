// Package content holds the reading material both front ends put in front
// of the judge.
package content

// BlockKind tells a front end how to draw a block and which element it
// reports when clicked.
type BlockKind string

const (
	KindHeading   BlockKind = "H2"
	KindParagraph BlockKind = "P"
	KindButton    BlockKind = "BUTTON"
	KindLink      BlockKind = "A"
)

// Block is one element of a document.
type Block struct {
	Kind BlockKind
	Text string
}

// Interactive reports whether clicking the block should count as polite.
func (block Block) Interactive() bool {
	return block.Kind == KindButton || block.Kind == KindLink
}

// Document is an ordered list of blocks under a title.
type Document struct {
	Title  string
	Blocks []Block
}

// Sample returns the built-in document: long enough to scroll, with a few
// controls worth clicking and plenty of prose that is not.
func Sample() Document {
	return Document{
		Title: "A Field Guide to Being Judged",
		Blocks: []Block{
			{KindParagraph, "This page is watching how you read it. Scroll too fast and it will notice. Read calmly and it might even warm up to you."},
			{KindHeading, "Scrolling"},
			{KindParagraph, "Skimming is a choice. The judge measures how quickly you move through the text and forms an opinion about it."},
			{KindParagraph, "Reaching the end of a long page within a few seconds of arriving is bold. Boldness is noted once per visit."},
			{KindParagraph, "A slow, steady pace through the whole page is the mark of a patient reader."},
			{KindButton, "I am reading calmly"},
			{KindHeading, "Clicking"},
			{KindParagraph, "Buttons and links are meant to be clicked. Paragraphs are not, however inviting they look."},
			{KindParagraph, "Clicking the same place over and over does not make it more interactive. It does make an impression."},
			{KindLink, "Read the house rules"},
			{KindParagraph, "Ten unhurried clicks on things that respond to clicks is a small achievement of its own."},
			{KindButton, "Click with purpose"},
			{KindHeading, "Waiting"},
			{KindParagraph, "Sit still for a few seconds and the judge wonders whether you are thinking. Sit still for longer and it assumes you wandered off."},
			{KindParagraph, "Switching away and coming back is multitasking. It is tolerated, up to a point."},
			{KindHeading, "Secrets"},
			{KindParagraph, "Some behaviour is rewarded in ways this page will not describe. A certain word, typed anywhere, is one of them."},
			{KindParagraph, "Keeping the judge impressed for a while is another. Doing everything right at once is the last."},
			{KindButton, "I have read everything"},
			{KindParagraph, "That is the end of the guide. The judge has been taking notes the whole time."},
		},
	}
}
