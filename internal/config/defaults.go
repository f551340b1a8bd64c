package config

const (
	defaultRegionX      = 120
	defaultRegionY      = 120
	defaultRegionW      = 800
	defaultRegionH      = 240
	defaultFontSize     = 54
	defaultFontColor    = "FFFFFF"
	defaultBoxColor     = "000000@0.45"
	defaultOutlineWidth = 2.0

	defaultVideoWidth  = 1080
	defaultVideoHeight = 1920
	defaultVideoFPS    = 30
	defaultVideoCRF    = 18
	defaultVideoPreset = "medium"

	defaultAudioCodec   = "aac"
	defaultAudioBitrate = "192k"

	defaultFrameWidth  = 1440
	defaultFrameHeight = 2560

	defaultTTSModel          = "gpt-4o-mini-tts"
	defaultTTSVoice          = "alloy"
	defaultTTSFormat         = "wav"
	defaultTTSSpeed          = 1.0
	defaultTTSTimeoutSeconds = 300

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Style: Style{
			RegionX:      defaultRegionX,
			RegionY:      defaultRegionY,
			RegionW:      defaultRegionW,
			RegionH:      defaultRegionH,
			FontSize:     defaultFontSize,
			FontColor:    defaultFontColor,
			BoxColor:     defaultBoxColor,
			OutlineWidth: defaultOutlineWidth,
		},
		Video: Video{
			Width:  defaultVideoWidth,
			Height: defaultVideoHeight,
			FPS:    defaultVideoFPS,
			CRF:    defaultVideoCRF,
			Preset: defaultVideoPreset,
			Pad:    true,
		},
		Audio: Audio{
			Codec:   defaultAudioCodec,
			Bitrate: defaultAudioBitrate,
		},
		Frames: Frames{
			Width:  defaultFrameWidth,
			Height: defaultFrameHeight,
		},
		TTS: TTS{
			Model:          defaultTTSModel,
			Voice:          defaultTTSVoice,
			Format:         defaultTTSFormat,
			Speed:          defaultTTSSpeed,
			TimeoutSeconds: defaultTTSTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
