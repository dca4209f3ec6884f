package hotplug

import (
	"context"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/phinze/pointerflow/internal/logging"
)

type (
	cfAllocatorRef   uintptr
	cfIndex          int64
	cfNumberRef      uintptr
	cfRunLoopRef     uintptr
	cfStringRef      uintptr
	cfTypeRef        uintptr
	cfStringEncoding uint32

	hidDeviceRef  uintptr
	hidManagerRef uintptr
	ioOptionBits  uint32
	ioReturn      int32
)

const (
	cfAllocatorDefault   cfAllocatorRef   = 0
	cfNumberSInt16Type   cfIndex          = 2
	cfStringEncodingUTF8 cfStringEncoding = 0x08000100

	hidOptionsNone ioOptionBits = 0
	ioSuccess      ioReturn     = 0
)

var (
	cfNumberGetValue        func(number cfNumberRef, typ cfIndex, out unsafe.Pointer) bool
	cfRelease               func(cf cfTypeRef)
	cfRunLoopGetCurrent     func() cfRunLoopRef
	cfRunLoopRun            func()
	cfRunLoopStop           func(rl cfRunLoopRef)
	cfStringCreateWithBytes func(alloc cfAllocatorRef, bytes []byte, n cfIndex, enc cfStringEncoding, external bool) cfStringRef

	hidDeviceGetProperty          func(dev hidDeviceRef, key cfStringRef) cfTypeRef
	hidManagerCreate              func(alloc cfAllocatorRef, opts ioOptionBits) hidManagerRef
	hidManagerOpen                func(mgr hidManagerRef, opts ioOptionBits) ioReturn
	hidManagerClose               func(mgr hidManagerRef, opts ioOptionBits) ioReturn
	hidManagerSetDeviceMatching   func(mgr hidManagerRef, matching uintptr)
	hidManagerRegisterMatchingCb  func(mgr hidManagerRef, cb uintptr, ctx uintptr)
	hidManagerScheduleWithRunLoop func(mgr hidManagerRef, rl cfRunLoopRef, mode cfStringRef)
)

var (
	runLoopDefaultMode uintptr
	matchedCallback    uintptr

	loadOnce sync.Once
	loadErr  error
)

func load() error {
	loadOnce.Do(func() {
		cf, err := purego.Dlopen("/System/Library/Frameworks/CoreFoundation.framework/CoreFoundation", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			loadErr = err
			return
		}
		purego.RegisterLibFunc(&cfNumberGetValue, cf, "CFNumberGetValue")
		purego.RegisterLibFunc(&cfRelease, cf, "CFRelease")
		purego.RegisterLibFunc(&cfRunLoopGetCurrent, cf, "CFRunLoopGetCurrent")
		purego.RegisterLibFunc(&cfRunLoopRun, cf, "CFRunLoopRun")
		purego.RegisterLibFunc(&cfRunLoopStop, cf, "CFRunLoopStop")
		purego.RegisterLibFunc(&cfStringCreateWithBytes, cf, "CFStringCreateWithBytes")
		if runLoopDefaultMode, err = purego.Dlsym(cf, "kCFRunLoopDefaultMode"); err != nil {
			loadErr = err
			return
		}

		iokit, err := purego.Dlopen("/System/Library/Frameworks/IOKit.framework/IOKit", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			loadErr = err
			return
		}
		purego.RegisterLibFunc(&hidDeviceGetProperty, iokit, "IOHIDDeviceGetProperty")
		purego.RegisterLibFunc(&hidManagerCreate, iokit, "IOHIDManagerCreate")
		purego.RegisterLibFunc(&hidManagerOpen, iokit, "IOHIDManagerOpen")
		purego.RegisterLibFunc(&hidManagerClose, iokit, "IOHIDManagerClose")
		purego.RegisterLibFunc(&hidManagerSetDeviceMatching, iokit, "IOHIDManagerSetDeviceMatching")
		purego.RegisterLibFunc(&hidManagerRegisterMatchingCb, iokit, "IOHIDManagerRegisterDeviceMatchingCallback")
		purego.RegisterLibFunc(&hidManagerScheduleWithRunLoop, iokit, "IOHIDManagerScheduleWithRunLoop")

		matchedCallback = purego.NewCallback(deviceMatched)
	})
	return loadErr
}

// watchers maps the integer handed to IOKit as callback context to the
// watcher it belongs to, so no Go pointer crosses into native code.
var (
	watchersMu sync.Mutex
	watchers   = map[uintptr]*watcher{}
	nextID     uintptr
)

type watcher struct {
	ch       chan<- struct{}
	vendorID uint16
}

func deviceMatched(ctx uintptr, _ ioReturn, _ uintptr, dev hidDeviceRef) {
	watchersMu.Lock()
	w := watchers[ctx]
	watchersMu.Unlock()
	if w == nil {
		return
	}

	vid, ok := vendorID(dev)
	if !ok || vid != w.vendorID {
		return
	}
	logging.For("hotplug").Debugf("device arrived (vendor 0x%04x)", vid)
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

func vendorID(dev hidDeviceRef) (uint16, bool) {
	key := []byte("VendorID")
	skey := cfStringCreateWithBytes(cfAllocatorDefault, key, cfIndex(len(key)), cfStringEncodingUTF8, false)
	if skey == 0 {
		return 0, false
	}
	defer cfRelease(cfTypeRef(skey))

	prop := hidDeviceGetProperty(dev, skey)
	if prop == 0 {
		return 0, false
	}
	var vid uint16
	if !cfNumberGetValue(cfNumberRef(prop), cfNumberSInt16Type, unsafe.Pointer(&vid)) {
		return 0, false
	}
	return vid, true
}

// Watch signals on the returned channel each time a HID device with vendorID
// appears. IOKit reports already attached devices once at startup. The
// watcher's run loop stops when ctx is cancelled. If IOKit cannot be loaded
// the channel never fires.
func Watch(ctx context.Context, vendorID uint16) <-chan struct{} {
	ch := make(chan struct{}, 1)
	log := logging.For("hotplug")
	if err := load(); err != nil {
		log.Warnf("IOKit unavailable, falling back to polling: %v", err)
		return ch
	}

	watchersMu.Lock()
	nextID++
	id := nextID
	watchers[id] = &watcher{ch: ch, vendorID: vendorID}
	watchersMu.Unlock()

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer func() {
			watchersMu.Lock()
			delete(watchers, id)
			watchersMu.Unlock()
		}()

		mgr := hidManagerCreate(cfAllocatorDefault, hidOptionsNone)
		if rv := hidManagerOpen(mgr, hidOptionsNone); rv != ioSuccess {
			log.Errorf("opening IOHIDManager: 0x%08x", rv)
			return
		}
		// Match every HID device and filter by vendor in the callback.
		hidManagerSetDeviceMatching(mgr, 0)

		rl := cfRunLoopGetCurrent()
		hidManagerScheduleWithRunLoop(mgr, rl, **(**cfStringRef)(unsafe.Pointer(&runLoopDefaultMode)))
		hidManagerRegisterMatchingCb(mgr, matchedCallback, id)

		go func() {
			<-ctx.Done()
			cfRunLoopStop(rl)
		}()

		log.Debugf("watching for vendor 0x%04x", vendorID)
		cfRunLoopRun()

		hidManagerClose(mgr, hidOptionsNone)
		cfRelease(cfTypeRef(mgr))
		log.Debugf("stopped")
	}()

	return ch
}
