package render

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/Bootj05/Solder-goggles/internal/hexcolor"
)

// WS281x strips are driven over SPI by expanding each data bit into
// three SPI bits (110 for one, 100 for zero) at 2.4 MHz, which yields
// the 800 kHz waveform the strip expects. Colors go out in GRB order.
const (
	spiSpeedHz      = 2400000
	spiBitsPerWord  = 8
	spiMode         = 0
	latchBytes      = 18 // >50us of zeros at 2.4 MHz resets the strip

	spiIOCWrMode        = 0x40016b01
	spiIOCWrBitsPerWord = 0x40016b03
	spiIOCWrMaxSpeedHz  = 0x40046b04
)

// spidev implements Driver on a Linux SPI device node.
type spidev struct {
	f   *os.File
	buf []byte
}

// newSpidev opens and configures the SPI device, e.g. /dev/spidev0.0.
func newSpidev(device string) (*spidev, error) {
	f, err := os.OpenFile(device, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("opening SPI device: %w", err)
	}

	if err := configureSPI(f.Fd()); err != nil {
		f.Close()
		return nil, fmt.Errorf("configuring SPI device: %w", err)
	}

	return &spidev{f: f}, nil
}

func configureSPI(fd uintptr) error {
	mode := uint8(spiMode)
	if err := ioctl(fd, spiIOCWrMode, unsafe.Pointer(&mode)); err != nil {
		return fmt.Errorf("setting mode: %w", err)
	}

	bits := uint8(spiBitsPerWord)
	if err := ioctl(fd, spiIOCWrBitsPerWord, unsafe.Pointer(&bits)); err != nil {
		return fmt.Errorf("setting bits per word: %w", err)
	}

	speed := uint32(spiSpeedHz)
	if err := ioctl(fd, spiIOCWrMaxSpeedHz, unsafe.Pointer(&speed)); err != nil {
		return fmt.Errorf("setting speed: %w", err)
	}

	return nil
}

func ioctl(fd, req uintptr, arg unsafe.Pointer) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(arg)); errno != 0 {
		return errno
	}
	return nil
}

// Render encodes and writes one frame.
func (s *spidev) Render(pixels []hexcolor.Color, brightness uint8) error {
	s.buf = encodeFrame(pixels, brightness, s.buf[:0])
	if _, err := s.f.Write(s.buf); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Close releases the SPI device.
func (s *spidev) Close() error {
	return s.f.Close()
}

// encodeFrame expands all pixels into SPI bytes, GRB order, brightness
// scaled, followed by the reset latch.
func encodeFrame(pixels []hexcolor.Color, brightness uint8, out []byte) []byte {
	for _, c := range pixels {
		for _, channel := range [3]uint8{
			scale(c.G(), brightness),
			scale(c.R(), brightness),
			scale(c.B(), brightness),
		} {
			enc := encodeByte(channel)
			out = append(out, enc[0], enc[1], enc[2])
		}
	}
	for i := 0; i < latchBytes; i++ {
		out = append(out, 0)
	}
	return out
}

// encodeByte expands one color byte into 24 SPI bits, three per data
// bit, MSB first.
func encodeByte(b uint8) [3]byte {
	var bits uint32
	for i := 7; i >= 0; i-- {
		bits <<= 3
		if b&(1<<uint(i)) != 0 {
			bits |= 0b110
		} else {
			bits |= 0b100
		}
	}
	return [3]byte{byte(bits >> 16), byte(bits >> 8), byte(bits)}
}
