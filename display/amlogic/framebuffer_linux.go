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

package amlogic

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
	"golang.org/x/xerrors"
)

// From <linux/fb.h>
const (
	fbioGetVScreenInfo = 0x4600
	fbioPutVScreenInfo = 0x4601
	fbActivateAll      = 64

	fbVirtualWidth  = 1920
	fbVirtualHeight = 2160
	fbBitsPerPixel  = 32
)

type fbBitField struct {
	Offset   uint32
	Length   uint32
	MsbRight uint32
}

type fbVarScreenInfo struct {
	Xres         uint32
	Yres         uint32
	XresVirtual  uint32
	YresVirtual  uint32
	Xoffset      uint32
	Yoffset      uint32
	BitsPerPixel uint32
	Grayscale    uint32
	Red          fbBitField
	Green        fbBitField
	Blue         fbBitField
	Transp       fbBitField
	Nonstd       uint32
	Activate     uint32
	Height       uint32
	Width        uint32
	AccelFlags   uint32
	Pixclock     uint32
	LeftMargin   uint32
	RightMargin  uint32
	UpperMargin  uint32
	LowerMargin  uint32
	HsyncLen     uint32
	VsyncLen     uint32
	Sync         uint32
	Vmode        uint32
	Rotate       uint32
	Colorspace   uint32
	Reserved     [4]uint32
}

func ioctl(fd uintptr, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(arg))
	if errno != 0 {
		return os.NewSyscallError("SYS_IOCTL", errno)
	}
	return nil
}

// setFramebufferResolution resizes the framebuffer device when its visible
// size differs. The virtual height leaves room for double buffering.
func setFramebufferResolution(device string, width, height int) error {
	f, err := os.OpenFile(device, os.O_RDWR, 0)
	if err != nil {
		return xerrors.Errorf("failed to open framebuffer: %w", err)
	}
	defer f.Close()

	var vinfo fbVarScreenInfo
	err = ioctl(f.Fd(), fbioGetVScreenInfo, unsafe.Pointer(&vinfo))
	if err != nil {
		return xerrors.Errorf("failed to get %s screen info: %w", device, err)
	}
	if int(vinfo.Xres) == width && int(vinfo.Yres) == height {
		return nil
	}

	logger.Debugf("resize %s from %dx%d to %dx%d", device, vinfo.Xres, vinfo.Yres, width, height)
	vinfo.Xres = uint32(width)
	vinfo.Yres = uint32(height)
	vinfo.XresVirtual = fbVirtualWidth
	vinfo.YresVirtual = fbVirtualHeight
	vinfo.BitsPerPixel = fbBitsPerPixel
	vinfo.Activate = fbActivateAll
	err = ioctl(f.Fd(), fbioPutVScreenInfo, unsafe.Pointer(&vinfo))
	if err != nil {
		return xerrors.Errorf("failed to set %s screen info: %w", device, err)
	}
	return nil
}
