package framegraph

// PassNode is one committed pass declaration.
//
// Reads and writes are filled in when the pass is declared; the request and
// release arrays only by lifetime analysis.
type PassNode struct {
	name       string
	index      PassIndex
	reads      []RawHandle
	writes     []RawHandle
	sideEffect bool
	commands   []PassCommand
	err        error // first declaration error, reported by Compile

	requests []ResourceIndex
	releases []ResourceIndex
}

// Name returns the pass name.
func (p *PassNode) Name() string { return p.name }

// Index returns the pass index.
func (p *PassNode) Index() PassIndex { return p.index }

// Reads returns the resource versions the pass reads.
func (p *PassNode) Reads() []RawHandle { return p.reads }

// Writes returns the resource versions the pass produces.
func (p *PassNode) Writes() []RawHandle { return p.writes }

// SideEffect reports whether the pass was marked as a culling root.
func (p *PassNode) SideEffect() bool { return p.sideEffect }

// CommandCount returns the number of recorded commands.
func (p *PassNode) CommandCount() int { return len(p.commands) }

// Requests returns the resources materialized before the pass runs.
func (p *PassNode) Requests() []ResourceIndex { return p.requests }

// Releases returns the resources released after the pass runs.
func (p *PassNode) Releases() []ResourceIndex { return p.releases }

// touches reports whether the pass reads or writes resource index r.
func (p *PassNode) touches(r ResourceIndex) bool {
	for _, h := range p.reads {
		if h.Index == r {
			return true
		}
	}
	for _, h := range p.writes {
		if h.Index == r {
			return true
		}
	}
	return false
}
