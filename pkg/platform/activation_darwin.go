//go:build darwin

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa
#import <Cocoa/Cocoa.h>

int
SetActivationPolicy(void) {
    [NSApp setActivationPolicy:NSApplicationActivationPolicyAccessory];
    return 0;
}
*/
import "C"
import "github.com/borgmon/alarmist/pkg/logger"

// SetActivationPolicy keeps the app out of the Dock so it lives in the menu bar
func SetActivationPolicy() {
	logger.Log.Debugw("setting accessory activation policy")
	C.SetActivationPolicy()
}
