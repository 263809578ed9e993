package kterm

import (
	"bytes"
	"image"
	_ "image/png"

	"golang.org/x/image/draw"
)

// KittyState accumulates a (possibly multi-chunk) Kitty graphics
// protocol transmission. Each APC payload is "key=value,key=value;
// <base64 data>"; the "m" key marks whether more chunks follow (§4.1
// APC sub-parser, SPEC_FULL DOMAIN STACK graphics plane).
type KittyState struct {
	pending    bool
	keys       map[string]string
	dataChunks [][]byte
}

// parseKittyByte exists for symmetry with the other graphics
// sub-parsers but is never entered directly: Kitty APC bodies are
// short enough, and infrequent enough, that this engine accumulates the
// whole APC string through the generic SOS/PM/APC path and sniffs the
// "G" prefix once in completeAPC instead of adding a dedicated
// mid-stream parser state.
func (t *Terminal) parseKittyByte(s *Session, b byte) {
	ps := &s.Parse
	if b == 0x1B {
		ps.pendingAPCOnST = true
		ps.State = StateEscape
		return
	}
	if b == 0x07 {
		t.completeAPC(s)
		ps.State = StateGround
		return
	}
	ps.APCBuf = append(ps.APCBuf, b)
}

// handleKittyAPC parses "key=value,..." pairs up to the first ';',
// treats the remainder as base64 image data, and assembles multi-chunk
// transmissions (m=1 means more chunks follow, m=0 or absent means
// this is the final chunk).
func (t *Terminal) handleKittyAPC(s *Session, body []byte) {
	semi := bytes.IndexByte(body, ';')
	var keyPart []byte
	var dataPart []byte
	if semi < 0 {
		keyPart = body
	} else {
		keyPart = body[:semi]
		dataPart = body[semi+1:]
	}

	keys := parseKittyKeys(keyPart)
	ks := &s.Kitty
	if ks.keys == nil || !ks.pending {
		ks.keys = keys
		ks.dataChunks = nil
	}
	if len(dataPart) > 0 {
		decoded, err := base64Decode(dataPart)
		if err == nil {
			ks.dataChunks = append(ks.dataChunks, decoded)
		} else {
			t.reportError(LevelWarning, SourceGraphics, "kitty APC: malformed base64 chunk")
		}
	}

	more := keys["m"] == "1"
	ks.pending = more
	if !more {
		t.completeKittyImage(s, ks)
		ks.keys = nil
		ks.dataChunks = nil
	}
}

func parseKittyKeys(raw []byte) map[string]string {
	keys := make(map[string]string)
	for _, pair := range bytes.Split(raw, []byte(",")) {
		eq := bytes.IndexByte(pair, '=')
		if eq < 0 {
			continue
		}
		keys[string(pair[:eq])] = string(pair[eq+1:])
	}
	return keys
}

// completeKittyImage is reached once every chunk of a transmission has
// arrived. When the payload decodes as a supported image format (f=100,
// the protocol's PNG encoding) it is downscaled with
// golang.org/x/image/draw to one sample per terminal cell below the
// cursor and painted as true-color blocks, the same way Sixel output
// is; an undecodable payload falls
// back to a single placeholder cell so the transmission still has a
// visible effect.
func (t *Terminal) completeKittyImage(s *Session, ks *KittyState) {
	if len(ks.dataChunks) == 0 {
		return
	}
	target := t.sixelTarget(s)
	raw := bytes.Join(ks.dataChunks, nil)

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Ops.Enqueue(Op{
			Kind:    OpSetCell,
			Session: target.Index,
			Rect:    Rect{Top: target.Cursor.Y, Left: target.Cursor.X, Bottom: target.Cursor.Y, Right: target.Cursor.X},
			Cell:    Cell{Char: '▒', Flags: FlagDirty, Foreground: DefaultColor(), Background: DefaultColor()},
		})
		return
	}

	maxCols := target.Cols() - target.Cursor.X
	maxRows := target.Rows() - target.Cursor.Y
	if maxCols < 1 || maxRows < 1 {
		return
	}
	if maxCols > 64 {
		maxCols = 64
	}
	if maxRows > 32 {
		maxRows = 32
	}

	dst := image.NewRGBA(image.Rect(0, 0, maxCols, maxRows))
	draw.ApproxBiLinearScaler.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	for y := 0; y < maxRows; y++ {
		for x := 0; x < maxCols; x++ {
			r, g, b, _ := dst.At(x, y).RGBA()
			color := RGBColor(uint8(r>>8), uint8(g>>8), uint8(b>>8))
			t.Ops.Enqueue(Op{
				Kind:    OpSetCell,
				Session: target.Index,
				Rect:    Rect{Top: target.Cursor.Y + y, Left: target.Cursor.X + x, Bottom: target.Cursor.Y + y, Right: target.Cursor.X + x},
				Cell:    Cell{Char: ' ', Foreground: color, Background: color},
			})
		}
	}
}
