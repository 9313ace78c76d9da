/*
 * Copyright (C) 2014 ~ 2018 Deepin Technology Co., Ltd.
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

// Package hdmi negotiates the color format attribute of the HDMI transmitter.
//
// The transmitter reports its output format as a free form token string,
// for example "444,10bit" or "rgb,8bit". The string is parsed into an Attr
// once, edited in structured form and serialized back for the driver.
package hdmi

import (
	"sort"
	"strings"
)

type Subsampling int

const (
	SubsamplingNone Subsampling = iota
	Subsampling444
	Subsampling422
	Subsampling420
)

var subsamplingTokens = map[Subsampling]string{
	Subsampling444: "444",
	Subsampling422: "422",
	Subsampling420: "420",
}

func (s Subsampling) String() string {
	return subsamplingTokens[s]
}

type Depth int

const (
	DepthNone Depth = iota
	Depth8
	Depth10
	Depth12
)

var depthTokens = map[Depth]string{
	Depth8:  "8bit",
	Depth10: "10bit",
	Depth12: "12bit",
}

func (d Depth) String() string {
	return depthTokens[d]
}

type segmentKind int

const (
	segmentText segmentKind = iota
	segmentSubsampling
	segmentDepth
	// a subsampling token after the first one, kept as text until the
	// subsampling is set
	segmentExtraSubsampling
)

type segment struct {
	kind segmentKind
	text string
}

// Attr is the structured form of the attribute string. Text around the
// subsampling and depth tokens is kept verbatim.
type Attr struct {
	Subsampling Subsampling
	Depth       Depth

	segments []segment
}

type span struct {
	start, end int
	kind       segmentKind
}

func (s span) overlaps(o span) bool {
	return s.start < o.end && o.start < s.end
}

// ParseAttr splits raw into its subsampling token, its depth token and the
// surrounding text. The first subsampling token is the one reported, later
// ones are only remembered so that SetSubsampling can drop them. For the
// depth, 10bit wins over 12bit which wins over 8bit.
func ParseAttr(raw string) *Attr {
	a := &Attr{}
	var spans []span

	subIdx := -1
	for sub, tok := range subsamplingTokens {
		idx := strings.Index(raw, tok)
		if idx < 0 {
			continue
		}
		if subIdx < 0 || idx < subIdx {
			subIdx = idx
			a.Subsampling = sub
		}
	}
	if subIdx >= 0 {
		spans = append(spans, span{start: subIdx, end: subIdx + 3, kind: segmentSubsampling})
	}

	for _, depth := range []Depth{Depth10, Depth12, Depth8} {
		tok := depthTokens[depth]
		idx := indexFree(raw, tok, 0, spans)
		if idx < 0 {
			continue
		}
		a.Depth = depth
		spans = append(spans, span{start: idx, end: idx + len(tok), kind: segmentDepth})
		break
	}

	if subIdx >= 0 {
		for _, tok := range subsamplingTokens {
			for from := 0; ; {
				idx := indexFree(raw, tok, from, spans)
				if idx < 0 {
					break
				}
				spans = append(spans, span{start: idx, end: idx + len(tok), kind: segmentExtraSubsampling})
				from = idx + len(tok)
			}
		}
	}

	sort.Slice(spans, func(i, j int) bool {
		return spans[i].start < spans[j].start
	})

	pos := 0
	for _, sp := range spans {
		if sp.start > pos {
			a.segments = append(a.segments, segment{kind: segmentText, text: raw[pos:sp.start]})
		}
		seg := segment{kind: sp.kind}
		if sp.kind == segmentExtraSubsampling {
			seg.text = raw[sp.start:sp.end]
		}
		a.segments = append(a.segments, seg)
		pos = sp.end
	}
	if pos < len(raw) {
		a.segments = append(a.segments, segment{kind: segmentText, text: raw[pos:]})
	}
	return a
}

// indexFree returns the first index of tok in s at or after from that does
// not overlap any of the reserved spans.
func indexFree(s, tok string, from int, reserved []span) int {
	for from <= len(s) {
		idx := strings.Index(s[from:], tok)
		if idx < 0 {
			return -1
		}
		idx += from
		candidate := span{start: idx, end: idx + len(tok)}
		free := true
		for _, r := range reserved {
			if r.overlaps(candidate) {
				free = false
				break
			}
		}
		if free {
			return idx
		}
		from = idx + 1
	}
	return -1
}

func (a *Attr) hasSegment(kind segmentKind) bool {
	for _, seg := range a.segments {
		if seg.kind == kind {
			return true
		}
	}
	return false
}

// SetSubsampling replaces the subsampling token in place, or appends one
// when the attribute has none. Any further subsampling token is removed with
// its separating comma.
func (a *Attr) SetSubsampling(s Subsampling) {
	a.dropExtraSubsampling()
	if !a.hasSegment(segmentSubsampling) {
		a.segments = append(a.segments, segment{kind: segmentSubsampling})
	}
	a.Subsampling = s
}

func (a *Attr) dropExtraSubsampling() {
	var segments []segment
	for i, seg := range a.segments {
		if seg.kind != segmentExtraSubsampling {
			segments = append(segments, seg)
			continue
		}
		last := len(segments) - 1
		if last >= 0 && segments[last].kind == segmentText && strings.HasSuffix(segments[last].text, ",") {
			segments[last].text = strings.TrimSuffix(segments[last].text, ",")
			if segments[last].text == "" {
				segments = segments[:last]
			}
		} else if i+1 < len(a.segments) && a.segments[i+1].kind == segmentText {
			a.segments[i+1].text = strings.TrimPrefix(a.segments[i+1].text, ",")
		}
	}
	a.segments = segments
}

// SetDepth replaces the depth token in place, or appends one when the
// attribute has none.
func (a *Attr) SetDepth(d Depth) {
	if !a.hasSegment(segmentDepth) {
		a.segments = append(a.segments, segment{kind: segmentDepth})
	}
	a.Depth = d
}

func (a *Attr) String() string {
	var sb strings.Builder
	for _, seg := range a.segments {
		switch seg.kind {
		case segmentText:
			sb.WriteString(seg.text)
		case segmentSubsampling:
			sb.WriteString(a.Subsampling.String())
		case segmentDepth:
			sb.WriteString(a.Depth.String())
		case segmentExtraSubsampling:
			sb.WriteString(seg.text)
		}
	}
	return sb.String()
}

// Negotiate applies the output policy to the attribute string. Forcing 4:2:2
// is evaluated before limiting the bit depth.
func Negotiate(current string, force422, limit8bit bool) string {
	a := ParseAttr(current)
	if force422 {
		a.SetSubsampling(Subsampling422)
	}
	if limit8bit && a.Depth != Depth8 {
		a.SetDepth(Depth8)
	}
	return a.String()
}
