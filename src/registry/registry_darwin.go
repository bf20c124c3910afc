//go:build darwin

package registry

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework Foundation
#import <AppKit/AppKit.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
	char *name;
	int pid;
	unsigned char *png;
	int pngLen;
} rs_app;

static void rs_on_main(void (^block)(void)) {
	if ([NSThread isMainThread]) {
		block();
	} else {
		dispatch_sync(dispatch_get_main_queue(), block);
	}
}

static NSData *rs_icon_png(NSImage *icon, int size) {
	if (icon == nil) {
		return nil;
	}
	NSBitmapImageRep *rep = [[NSBitmapImageRep alloc]
		initWithBitmapDataPlanes:NULL
		pixelsWide:size
		pixelsHigh:size
		bitsPerSample:8
		samplesPerPixel:4
		hasAlpha:YES
		isPlanar:NO
		colorSpaceName:NSDeviceRGBColorSpace
		bytesPerRow:0
		bitsPerPixel:0];
	if (rep == nil) {
		return nil;
	}
	[NSGraphicsContext saveGraphicsState];
	[NSGraphicsContext setCurrentContext:[NSGraphicsContext graphicsContextWithBitmapImageRep:rep]];
	[icon drawInRect:NSMakeRect(0, 0, size, size) fromRect:NSZeroRect operation:NSCompositingOperationCopy fraction:1.0];
	[NSGraphicsContext restoreGraphicsState];
	NSData *png = [rep representationUsingType:NSBitmapImageFileTypePNG properties:@{}];
	[rep release];
	return png;
}

static int rs_list_apps(rs_app **out, int *count, int iconSize) {
	__block rs_app *apps = NULL;
	__block int n = 0;
	rs_on_main(^{
		@autoreleasepool {
			NSArray<NSRunningApplication *> *running = [[NSWorkspace sharedWorkspace] runningApplications];
			apps = calloc(running.count > 0 ? running.count : 1, sizeof(rs_app));
			if (apps == NULL) {
				return;
			}
			for (NSRunningApplication *app in running) {
				if (app.activationPolicy != NSApplicationActivationPolicyRegular || app.terminated) {
					continue;
				}
				NSString *name = app.localizedName;
				if (name == nil) {
					name = @"";
				}
				apps[n].name = strdup(name.UTF8String);
				apps[n].pid = app.processIdentifier;
				NSData *png = rs_icon_png(app.icon, iconSize);
				if (png != nil && png.length > 0) {
					apps[n].png = malloc(png.length);
					if (apps[n].png != NULL) {
						memcpy(apps[n].png, png.bytes, png.length);
						apps[n].pngLen = (int)png.length;
					}
				}
				n++;
			}
		}
	});
	if (apps == NULL) {
		return -1;
	}
	*out = apps;
	*count = n;
	return 0;
}

static void rs_free_apps(rs_app *apps, int count) {
	for (int i = 0; i < count; i++) {
		free(apps[i].name);
		free(apps[i].png);
	}
	free(apps);
}

// 0 activated, 1 not running, 2 refused.
static int rs_activate_app(int pid) {
	__block int rc = 0;
	rs_on_main(^{
		@autoreleasepool {
			NSRunningApplication *app = [NSRunningApplication runningApplicationWithProcessIdentifier:pid];
			if (app == nil || app.terminated) {
				rc = 1;
				return;
			}
			if (![app activateWithOptions:NSApplicationActivateAllWindows]) {
				rc = 2;
			}
		}
	});
	return rc;
}
*/
import "C"

import (
	"bytes"
	"fmt"
	"image/png"
	"log"
	"unsafe"
)

// iconPixels is twice the drawn icon size so Retina scaling stays sharp.
const iconPixels = 96

type darwinRegistry struct{}

func newPlatformRegistry() (Registry, error) { return &darwinRegistry{}, nil }

func (r *darwinRegistry) Snapshot() ([]Candidate, error) {
	var cApps *C.rs_app
	var cCount C.int
	if C.rs_list_apps(&cApps, &cCount, C.int(iconPixels)) != 0 {
		return nil, fmt.Errorf("failed to enumerate running applications")
	}
	defer C.rs_free_apps(cApps, cCount)

	count := int(cCount)
	candidates := make([]Candidate, 0, count)
	if count == 0 {
		return candidates, nil
	}
	for _, ca := range unsafe.Slice(cApps, count) {
		c := Candidate{
			Name:   C.GoString(ca.name),
			Handle: Handle(ca.pid),
		}
		if ca.png != nil && ca.pngLen > 0 {
			data := C.GoBytes(unsafe.Pointer(ca.png), ca.pngLen)
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				log.Printf("registry: icon for %q could not be decoded: %v", c.Name, err)
			} else {
				c.Icon = img
			}
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func (r *darwinRegistry) Activate(h Handle) error {
	switch C.rs_activate_app(C.int(h)) {
	case 0:
		return nil
	case 1:
		return wrapNotRunning(h)
	default:
		return fmt.Errorf("activate pid %d: refused by the system", int(h))
	}
}
