package audio

// SelectBackend picks a Backend at coordinator construction time, in
// order: (1) if configuredExternalPlayer is non-empty, use it; (2) if
// preferNative, return the native backend without probing the audio
// device, so a device failure surfaces only on the first Play; (3)
// otherwise probe for mpv, ffplay, then vlc, and return a device-not-found
// error if none is installed. The native backend is not tried when
// preferNative is false, and a native failure never falls back to an
// external player.
func SelectBackend(preferNative bool, configuredExternalPlayer string) (Backend, error) {
	if configuredExternalPlayer != "" {
		return NewExternalBackend(configuredExternalPlayer)
	}

	if preferNative {
		native := NewNativeBackend()
		return native, nil
	}

	nativeErr := errDeviceNotFound(nil)
	for _, candidate := range []string{"mpv", "ffplay", "vlc"} {
		if backend, err := NewExternalBackend(candidate); err == nil {
			return backend, nil
		}
	}
	return nil, nativeErr
}
