package rbxbin

import (
	"github.com/pinkythegawd/Roblox-rbxl-extractor/internal/byteio"
)

func (p *Parser) readProp(r *byteio.Reader) error {
	classID, err := r.ReadVarint()
	if err != nil {
		return err
	}
	name, err := r.ReadString()
	if err != nil {
		return err
	}
	name = p.names.Intern(name)
	tag, err := r.ReadU8()
	if err != nil {
		return err
	}

	refs := p.classOrder[int64(classID)]
	count := len(refs)
	if count == 0 {
		return nil
	}

	values, err := p.readValues(r, ValueType(tag), count)
	if err != nil {
		return err
	}
	for i, referent := range refs {
		if i >= len(values) {
			break
		}
		if inst, ok := p.tree.Instances[referent]; ok {
			inst.Properties[name] = values[i]
		}
	}
	return nil
}

// readValues decodes count values of the given tag, dispatching to
// recoverUnknown for any tag outside the 27 defined in spec.md §3.
func (p *Parser) readValues(r *byteio.Reader, vt ValueType, count int) ([]Value, error) {
	switch vt {
	case TypeString:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			s, err := r.ReadString()
			return VString(s), err
		})
	case TypeBool:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			b, err := r.ReadBool()
			return VBool(b), err
		})
	case TypeInt32:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			v, err := r.ReadI32LE()
			return VInt32(v), err
		})
	case TypeFloat:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			v, err := r.ReadF32LE()
			return VFloat(v), err
		})
	case TypeDouble:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			v, err := r.ReadF64LE()
			return VDouble(v), err
		})
	case TypeUDim:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			return readUDim(r)
		})
	case TypeUDim2:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			x, err := readUDim(r)
			if err != nil {
				return nil, err
			}
			y, err := readUDim(r)
			if err != nil {
				return nil, err
			}
			return VUDim2{X: x, Y: y}, nil
		})
	case TypeRay:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			var v VRay
			for i := range v.Origin {
				f, err := r.ReadF32LE()
				if err != nil {
					return nil, err
				}
				v.Origin[i] = f
			}
			for i := range v.Direction {
				f, err := r.ReadF32LE()
				if err != nil {
					return nil, err
				}
				v.Direction[i] = f
			}
			return v, nil
		})
	case TypeFaces:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			v, err := r.ReadU8()
			return VFaces(v), err
		})
	case TypeAxes:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			v, err := r.ReadU8()
			return VAxes(v), err
		})
	case TypeBrickColor:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			v, err := r.ReadI32LE()
			return VBrickColor(v), err
		})
	case TypeColor3:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			rr, g, b, err := read3f32(r)
			return VColor3{R: rr, G: g, B: b}, err
		})
	case TypeColor3Uint8:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			rr, err := r.ReadU8()
			if err != nil {
				return nil, err
			}
			g, err := r.ReadU8()
			if err != nil {
				return nil, err
			}
			b, err := r.ReadU8()
			if err != nil {
				return nil, err
			}
			return VColor3Uint8{R: float32(rr) / 255, G: float32(g) / 255, B: float32(b) / 255}, nil
		})
	case TypeVector2:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			x, y, err := read2f32(r)
			return VVector2{X: x, Y: y}, err
		})
	case TypeVector3:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			x, y, z, err := read3f32(r)
			return VVector3{X: x, Y: y, Z: z}, err
		})
	case TypeVector2Int16:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			xb, err := r.ReadFixed(2)
			if err != nil {
				return nil, err
			}
			yb, err := r.ReadFixed(2)
			if err != nil {
				return nil, err
			}
			return VVector2Int16{X: int16(uint16(xb[0]) | uint16(xb[1])<<8), Y: int16(uint16(yb[0]) | uint16(yb[1])<<8)}, nil
		})
	case TypeCFrame:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			var v VCFrame
			px, py, pz, err := read3f32(r)
			if err != nil {
				return nil, err
			}
			v.Position = [3]float32{px, py, pz}
			rot, err := r.ReadRotationMatrix()
			if err != nil {
				return nil, err
			}
			v.Rotation = [9]float32(rot)
			return v, nil
		})
	case TypeEnum:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			v, err := r.ReadU32LE()
			return VEnum(v), err
		})
	case TypeInstanceRef:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			v, err := r.ReadI32LE()
			return VInstanceRef{Referent: Referent(v)}, err
		})
	case TypeProtectedString:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			s, err := readProtectedString(r)
			return VProtectedString(s), err
		})
	case TypeNumberSequence:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			return readNumberSequence(r)
		})
	case TypeColorSequence:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			return readColorSequence(r)
		})
	case TypeNumberRange:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			lo, hi, err := read2f32(r)
			return VNumberRange{Min: lo, Max: hi}, err
		})
	case TypeRect:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			l, t, rgt, bot, err := read4f32(r)
			return VRect{Left: l, Top: t, Right: rgt, Bottom: bot}, err
		})
	case TypePhysicalProperties:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			d, f, e, err := read3f32(r)
			return VPhysicalProperties{Density: d, Friction: f, Elasticity: e}, err
		})
	case TypeInt64:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			v, err := r.ReadI64LE()
			return VInt64(v), err
		})
	case TypeSharedString:
		return readEach(r, count, func(r *byteio.Reader) (Value, error) {
			idx, err := r.ReadVarint()
			if err != nil {
				return nil, err
			}
			return p.resolveSharedString(idx), nil
		})
	default:
		return p.recoverUnknown(r, count)
	}
}

func readEach(r *byteio.Reader, count int, one func(*byteio.Reader) (Value, error)) ([]Value, error) {
	out := make([]Value, 0, count)
	for i := 0; i < count; i++ {
		v, err := one(r)
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

func readUDim(r *byteio.Reader) (VUDim, error) {
	scale, err := r.ReadF32LE()
	if err != nil {
		return VUDim{}, err
	}
	offset, err := r.ReadI32LE()
	if err != nil {
		return VUDim{}, err
	}
	return VUDim{Scale: scale, Offset: offset}, nil
}

func read2f32(r *byteio.Reader) (a, b float32, err error) {
	if a, err = r.ReadF32LE(); err != nil {
		return
	}
	b, err = r.ReadF32LE()
	return
}

func read3f32(r *byteio.Reader) (a, b, c float32, err error) {
	if a, b, err = read2f32(r); err != nil {
		return
	}
	c, err = r.ReadF32LE()
	return
}

func read4f32(r *byteio.Reader) (a, b, c, d float32, err error) {
	if a, b, c, err = read3f32(r); err != nil {
		return
	}
	d, err = r.ReadF32LE()
	return
}

func readNumberSequence(r *byteio.Reader) (Value, error) {
	n, err := r.ReadVarint()
	if err != nil {
		return nil, err
	}
	seq := VNumberSequence{Keypoints: make([]NumberSequenceKeypoint, 0, n)}
	for i := uint64(0); i < n; i++ {
		t, v, e, err := read3f32(r)
		if err != nil {
			return seq, err
		}
		seq.Keypoints = append(seq.Keypoints, NumberSequenceKeypoint{Time: t, Value: v, Envelope: e})
	}
	return seq, nil
}

func readColorSequence(r *byteio.Reader) (Value, error) {
	n, err := r.ReadVarint()
	if err != nil {
		return nil, err
	}
	seq := VColorSequence{Keypoints: make([]ColorSequenceKeypoint, 0, n)}
	for i := uint64(0); i < n; i++ {
		t, err := r.ReadF32LE()
		if err != nil {
			return seq, err
		}
		rr, g, b, err := read3f32(r)
		if err != nil {
			return seq, err
		}
		e, err := r.ReadF32LE()
		if err != nil {
			return seq, err
		}
		seq.Keypoints = append(seq.Keypoints, ColorSequenceKeypoint{Time: t, Color: VColor3{R: rr, G: g, B: b}, Envelope: e})
	}
	return seq, nil
}

// resolveInstanceRefs walks every decoded property once the full
// instance map is known, filling VInstanceRef.Resolved for referents
// that were assigned before their target instance was registered
// (forward references are legal; the INST tokens that create them can
// arrive in any chunk order).
func (p *Parser) resolveInstanceRefs() {
	for _, inst := range p.tree.Instances {
		for name, v := range inst.Properties {
			if ref, ok := v.(VInstanceRef); ok {
				ref.Resolved = p.tree.Instances[ref.Referent]
				inst.Properties[name] = ref
			}
		}
	}
}
