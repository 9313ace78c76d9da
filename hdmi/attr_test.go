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

package hdmi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func countSubsamplingTokens(s string) int {
	n := 0
	for _, tok := range []string{"444", "422", "420"} {
		n += strings.Count(s, tok)
	}
	return n
}

func TestNegotiateForce422Replace(t *testing.T) {
	for _, attr := range []string{"444", "422", "420", "444,10bit", "rgb,420,12bit", "420now"} {
		got := Negotiate(attr, true, false)
		assert.Len(t, got, len(attr), attr)
		assert.Equal(t, 1, countSubsamplingTokens(got), attr)
		assert.Contains(t, got, "422", attr)
	}
	assert.Equal(t, "422,10bit", Negotiate("444,10bit", true, false))
	assert.Equal(t, "rgb,422,12bit", Negotiate("rgb,420,12bit", true, false))
}

func TestNegotiateForce422Append(t *testing.T) {
	testdata := []struct {
		attr, want string
	}{
		{"", "422"},
		{"10bit", "10bit422"},
		{"rgb,", "rgb,422"},
		{"4bit", "4bit422"},
	}
	for _, v := range testdata {
		assert.Equal(t, v.want, Negotiate(v.attr, true, false))
	}
}

func TestNegotiateLimit8bit(t *testing.T) {
	testdata := []struct {
		attr, want string
	}{
		{"444,10bit", "444,8bit"},
		{"420,12bit", "420,8bit"},
		{"444,8bit", "444,8bit"},
		{"8bit", "8bit"},
		{"444", "4448bit"},
		{"", "8bit"},
		{"10bit12bit", "8bit12bit"},
	}
	for _, v := range testdata {
		assert.Equal(t, v.want, Negotiate(v.attr, false, true), v.attr)
	}
}

func TestNegotiateBoth(t *testing.T) {
	assert.Equal(t, "422,8bit", Negotiate("444,12bit", true, true))
	assert.Equal(t, "4228bit", Negotiate("", true, true))
	assert.Equal(t, "8bit422", Negotiate("10bit", true, true))
}

func TestNegotiateNoPolicy(t *testing.T) {
	for _, attr := range []string{"", "444,10bit", "rgb"} {
		assert.Equal(t, attr, Negotiate(attr, false, false))
	}
}

func TestParseAttr(t *testing.T) {
	a := ParseAttr("rgb,444,12bit")
	assert.Equal(t, Subsampling444, a.Subsampling)
	assert.Equal(t, Depth12, a.Depth)
	assert.Equal(t, "rgb,444,12bit", a.String())

	a = ParseAttr("420,444")
	assert.Equal(t, Subsampling420, a.Subsampling)
	assert.Equal(t, DepthNone, a.Depth)

	a = ParseAttr("rgb")
	assert.Equal(t, SubsamplingNone, a.Subsampling)
	assert.Equal(t, "rgb", a.String())
}

func TestNegotiateForce422CollapsesExtraTokens(t *testing.T) {
	testdata := []struct {
		attr, want string
	}{
		{"444,420", "422"},
		{"420,444,10bit", "422,10bit"},
		{"rgb,444,422,12bit", "rgb,422,12bit"},
		{"444420", "422"},
	}
	for _, v := range testdata {
		got := Negotiate(v.attr, true, false)
		assert.Equal(t, v.want, got, v.attr)
		assert.Equal(t, 1, countSubsamplingTokens(got), v.attr)
	}

	// without forcing, extra tokens are left alone
	assert.Equal(t, "444,420,8bit", Negotiate("444,420,10bit", false, true))
}
