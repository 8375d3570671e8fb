//go:build windows

package wallpaper

import (
	"context"
	"errors"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/five82/dreamwall/internal/failure"
)

var (
	user32                    = windows.NewLazySystemDLL("user32.dll")
	procSystemParametersInfoW = user32.NewProc("SystemParametersInfoW")
	procGetSystemMetrics      = user32.NewProc("GetSystemMetrics")
	procSetProcessDPIAware    = user32.NewProc("SetProcessDPIAware")
)

const (
	spiSetDeskWallpaper = 0x0014
	spifUpdateIniFile   = 0x01
	spifSendChange      = 0x02
	smCxScreen          = 0
	smCyScreen          = 1
)

type windowsSetter struct{}

func newSystemSetter() Setter {
	return windowsSetter{}
}

func (windowsSetter) Apply(_ context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return failure.Wrap(failure.OSIntegration, "resolve wallpaper path", err)
	}
	ptr, err := windows.UTF16PtrFromString(abs)
	if err != nil {
		return failure.Wrap(failure.OSIntegration, "encode wallpaper path", err)
	}
	ok, _, callErr := procSystemParametersInfoW.Call(
		spiSetDeskWallpaper,
		0,
		uintptr(unsafe.Pointer(ptr)),
		spifUpdateIniFile|spifSendChange,
	)
	if ok == 0 {
		return failure.Wrap(failure.OSIntegration, "SystemParametersInfoW", callErr)
	}
	return nil
}

func screenSize(_ context.Context) (int, int, error) {
	// Physical pixels rather than the DPI-scaled virtual size.
	_, _, _ = procSetProcessDPIAware.Call()
	w, _, _ := procGetSystemMetrics.Call(smCxScreen)
	h, _, _ := procGetSystemMetrics.Call(smCyScreen)
	if w == 0 || h == 0 {
		return 0, 0, errors.New("GetSystemMetrics returned zero size")
	}
	return int(w), int(h), nil
}
