// Package rbxbin implements the structured binary parser (spec.md C3):
// header, class table, and chunk/token stream decode into a typed
// instance map and parent tree. Any error during chunk decode, token
// dispatch, or property read aborts only the current chunk; a
// completely unreadable header is the only fatal error.
package rbxbin

import (
	"log/slog"

	"github.com/pinkythegawd/Roblox-rbxl-extractor/internal/byteio"
	"github.com/pinkythegawd/Roblox-rbxl-extractor/internal/chunkcache"
	"github.com/pinkythegawd/Roblox-rbxl-extractor/internal/rbxchunk"
	"github.com/pinkythegawd/Roblox-rbxl-extractor/internal/strtab"
)

const (
	tokInst = 1
	tokProp = 2
	tokPrnt = 3
	tokEnd  = 4
)

// Parser holds the state accumulated across the whole file: the
// instance map (by referent), class-id -> creation-order referent
// list (for PROP's positional assignment), and the class/property
// name interning table.
type Parser struct {
	tree       Tree
	classOrder map[int64][]Referent
	names      *strtab.Table
	cache      *chunkcache.Cache
	log        *slog.Logger
}

// New returns a Parser ready to decode a single file. cache may be nil.
func New(cache *chunkcache.Cache, log *slog.Logger) *Parser {
	if log == nil {
		log = slog.Default()
	}
	return &Parser{
		tree: Tree{
			Instances: make(map[Referent]*Instance),
		},
		classOrder: make(map[int64][]Referent),
		names:      strtab.New(),
		cache:      cache,
		log:        log,
	}
}

// Parse decodes buf into a Tree. It returns an error only when the
// header cannot be read: ErrBadMagic, or a byteio error when the input
// ends inside the header. Every other malformed-input condition is
// absorbed and reflected in a partial Tree.
func (p *Parser) Parse(buf []byte) (Tree, error) {
	r := byteio.New(buf)
	hdr, err := readHeader(r)
	if err != nil {
		return Tree{}, err
	}

	if hdr.ClassCount > 0 {
		if names, ok := readClassTable(r, hdr.ClassCount); ok {
			p.tree.ClassNames = names
		} else {
			p.log.Debug("class table unreadable, falling back to inline class names")
		}
	}

	for {
		payload, err := rbxchunk.Read(r, p.cache)
		if err == rbxchunk.ErrTerminator {
			break
		}
		if err != nil {
			p.log.Debug("chunk header unreadable, stopping", "err", err)
			break
		}
		p.runChunk(payload)
	}

	p.resolveInstanceRefs()
	return p.tree, nil
}

// runChunk decodes the token stream of a single decompressed chunk
// payload. Any error inside ends this chunk only (spec.md §7).
func (p *Parser) runChunk(payload []byte) {
	r := byteio.New(payload)
	for r.Remaining() > 0 {
		tok, err := r.ReadU8()
		if err != nil {
			return
		}
		switch tok {
		case tokInst:
			if err := p.readInst(r); err != nil {
				p.log.Debug("INST token failed, ending chunk", "err", err)
				return
			}
		case tokProp:
			if err := p.readProp(r); err != nil {
				p.log.Debug("PROP token failed, ending chunk", "err", err)
				return
			}
		case tokPrnt:
			if err := p.readPrnt(r); err != nil {
				p.log.Debug("PRNT token failed, ending chunk", "err", err)
				return
			}
		case tokEnd:
			return
		default:
			p.log.Debug("unknown token, ending chunk defensively", "token", tok)
			return
		}
	}
}

func (p *Parser) readInst(r *byteio.Reader) error {
	classID, err := r.ReadVarint()
	if err != nil {
		return err
	}
	cid := int64(classID)

	var className string
	if int(classID) < len(p.tree.ClassNames) {
		className = p.tree.ClassNames[classID]
	} else {
		className, err = r.ReadString()
		if err != nil {
			return err
		}
	}
	className = p.names.Intern(className)

	hasServiceMarkers, err := r.ReadBool()
	if err != nil {
		return err
	}
	if hasServiceMarkers {
		count, err := r.ReadU32LE()
		if err != nil {
			return err
		}
		for i := uint32(0); i < count; i++ {
			if _, err := r.ReadString(); err != nil {
				return err
			}
		}
	}

	instanceCount, err := r.ReadU32LE()
	if err != nil {
		return err
	}
	for i := uint32(0); i < instanceCount; i++ {
		ref, err := r.ReadI32LE()
		if err != nil {
			return err
		}
		referent := Referent(ref)
		inst := newInstance(cid, className, referent)
		inst.IsService = hasServiceMarkers
		p.tree.Instances[referent] = inst
		p.classOrder[cid] = append(p.classOrder[cid], referent)
	}
	return nil
}

func (p *Parser) readPrnt(r *byteio.Reader) error {
	if _, err := r.ReadU8(); err != nil { // version, read but ignored
		return err
	}
	count, err := r.ReadU32LE()
	if err != nil {
		return err
	}
	children := make([]Referent, count)
	for i := range children {
		v, err := r.ReadI32LE()
		if err != nil {
			return err
		}
		children[i] = Referent(v)
	}
	parents := make([]Referent, count)
	for i := range parents {
		v, err := r.ReadI32LE()
		if err != nil {
			return err
		}
		parents[i] = Referent(v)
	}

	for i := range children {
		child, ok := p.tree.Instances[children[i]]
		if !ok {
			continue // unresolved referent: drop the edge, don't fabricate a node
		}
		if parents[i] == -1 {
			p.tree.Roots = append(p.tree.Roots, child)
			continue
		}
		parent, ok := p.tree.Instances[parents[i]]
		if !ok {
			continue
		}
		parent.Children = append(parent.Children, child)
	}
	return nil
}
