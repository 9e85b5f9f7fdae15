package command

// Builder is a strictly sequential command accumulator. Emission order is the
// printed order: no reordering, buffering, or deduplication happens here.
// A builder serves exactly one rendering; it must not be shared across
// requests or reused after Finish.
type Builder struct {
	cmds     []Command
	finished bool
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Append adds one command to the sequence. Appending after Finish is a
// programming error.
func (b *Builder) Append(cmd Command) {
	if b.finished {
		panic("command: Append on finished builder")
	}
	b.cmds = append(b.cmds, cmd)
}

// Len reports the number of accumulated commands.
func (b *Builder) Len() int {
	return len(b.cmds)
}

// Finish freezes the accumulated commands and returns them as a Sequence.
// The builder cannot be used afterwards.
func (b *Builder) Finish() Sequence {
	if b.finished {
		panic("command: Finish called twice")
	}
	b.finished = true
	seq := make(Sequence, len(b.cmds))
	copy(seq, b.cmds)
	b.cmds = nil
	return seq
}
