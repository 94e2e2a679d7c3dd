// +build linux

package js

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"syscall"
	"unsafe"
)

type jsDevice struct {
	file        *os.File
	index       int
	name        string
	buttonCount uint8
}

// Open opens /dev/input/js<index>.
func Open(index int) (Device, error) {
	f, err := os.OpenFile(fmt.Sprintf("/dev/input/js%d", index), os.O_RDONLY, 0666)
	if err != nil {
		return nil, err
	}
	d := &jsDevice{file: f, index: index}
	errno := d.ioctl(iocGBUTTONS, unsafe.Pointer(&d.buttonCount))
	if errno == 0 {
		var buf [256]byte
		if errno = d.ioctl(iocGNAME, unsafe.Pointer(&buf)); errno == 0 {
			d.name = string(bytes.TrimRight(buf[:], "\x00"))
		}
	}
	if errno != 0 {
		f.Close()
		return nil, errno
	}
	return d, nil
}

// Detect opens the first joystick found from startIndex, nil if none.
func Detect(startIndex int) (Device, error) {
	for index := startIndex; index < 256; index++ {
		d, err := Open(index)
		if os.IsNotExist(err) {
			continue
		}
		return d, err
	}
	return nil, nil
}

func (d *jsDevice) Close() error     { return d.file.Close() }
func (d *jsDevice) Index() int       { return d.index }
func (d *jsDevice) Name() string     { return d.name }
func (d *jsDevice) ButtonCount() int { return int(d.buttonCount) }

func (d *jsDevice) ReadEvent() (Event, error) {
	var ev event
	if err := binary.Read(d.file, binary.LittleEndian, &ev); err != nil {
		return nil, err
	}
	if ev.Type&evBTN != 0 {
		return &buttonEvent{event: ev}, nil
	}
	return &ev, nil
}

const (
	iocGBUTTONS uint = 0x80016a12
	iocGNAME    uint = 0x80ff6a13
)

func (d *jsDevice) ioctl(req uint, ptr unsafe.Pointer) syscall.Errno {
	_, _, err := syscall.Syscall(syscall.SYS_IOCTL, d.file.Fd(), uintptr(req), uintptr(ptr))
	return err
}
