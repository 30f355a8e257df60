package filerenamer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	filerenamer "github.com/thrawn01/file-renamer"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		name string
		stem string
		ext  string
	}{
		{name: "shot_0007.png", stem: "shot_0007", ext: ".png"},
		{name: "plate.1001.exr", stem: "plate.1001", ext: ".exr"},
		{name: "README", stem: "README", ext: ""},
		{name: ".bashrc", stem: ".bashrc", ext: ""},
		{name: "..hidden.txt", stem: "..hidden", ext: ".txt"},
		{name: "trailing.", stem: "trailing", ext: "."},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			stem, ext := filerenamer.SplitName(test.name)
			assert.Equal(t, test.stem, stem)
			assert.Equal(t, test.ext, ext)

			entry := filerenamer.FileEntry{Name: test.name}
			assert.Equal(t, test.stem, entry.Stem())
			assert.Equal(t, test.ext, entry.Ext())
		})
	}
}

func TestComputeNewNameIdentity(t *testing.T) {
	// Disabled toggles win over whatever values are filled in.
	rules := filerenamer.Rules{
		FindText:     "shot",
		ReplaceText:  "plate",
		StartNumber:  1001,
		PaddingWidth: 8,
		NewExtension: "exr",
	}

	for _, name := range []string{
		"shot_0007.png",
		"plate.1001.exr",
		"README",
		".bashrc",
		"a.b.c.d",
		"",
		"frame 12 final.tif",
	} {
		for _, counter := range []int{0, 1, 99} {
			assert.Equal(t, name, filerenamer.ComputeNewName(name, counter, rules))
		}
	}
}

func TestComputeNewName(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		counter  int
		rules    filerenamer.Rules
		expected string
	}{
		{
			name:     "RenumberStripsUnderscoreSuffix",
			filename: "shot_0007.png",
			rules:    filerenamer.Rules{RenumberEnabled: true, StartNumber: 1001},
			expected: "shot.1001.png",
		},
		{
			name:     "RenumberStripsDotSuffix",
			filename: "plate.0042.exr",
			counter:  2,
			rules:    filerenamer.Rules{RenumberEnabled: true, StartNumber: 1001},
			expected: "plate.1003.exr",
		},
		{
			name:     "RenumberKeepsShortSuffix",
			filename: "take_12.mov",
			rules:    filerenamer.Rules{RenumberEnabled: true, StartNumber: 1},
			expected: "take_12.0001.mov",
		},
		{
			name:     "RenumberKeepsLongSuffix",
			filename: "take_123456.mov",
			rules:    filerenamer.Rules{RenumberEnabled: true, StartNumber: 1},
			expected: "take_123456.0001.mov",
		},
		{
			name:     "RenumberKeepsMidNameDigits",
			filename: "v002_comp.dpx",
			rules:    filerenamer.Rules{RenumberEnabled: true, StartNumber: 10},
			expected: "v002_comp.0010.dpx",
		},
		{
			name:     "RenumberWithoutExtension",
			filename: "frame_001",
			rules:    filerenamer.Rules{RenumberEnabled: true, StartNumber: 5},
			expected: "frame.0005",
		},
		{
			name:     "RenumberWithPaddingWidth",
			filename: "shot_0007.png",
			rules:    filerenamer.Rules{RenumberEnabled: true, StartNumber: 7, PaddingEnabled: true, PaddingWidth: 6},
			expected: "shot.000007.png",
		},
		{
			name:     "RenumberPaddingIsFloor",
			filename: "shot.png",
			rules:    filerenamer.Rules{RenumberEnabled: true, StartNumber: 12345},
			expected: "shot.12345.png",
		},
		{
			name:     "RenumberPaddingWidthIgnoredWhenPaddingDisabled",
			filename: "shot.png",
			rules:    filerenamer.Rules{RenumberEnabled: true, StartNumber: 3, PaddingWidth: 9},
			expected: "shot.0003.png",
		},
		{
			name:     "RenumberZeroWidth",
			filename: "shot.png",
			rules:    filerenamer.Rules{RenumberEnabled: true, StartNumber: 3, PaddingEnabled: true, PaddingWidth: 0},
			expected: "shot.3.png",
		},
		{
			name:     "PaddingOnlyRepadsFirstRun",
			filename: "shot7_v2.png",
			rules:    filerenamer.Rules{PaddingEnabled: true, PaddingWidth: 4},
			expected: "shot0007_v2.png",
		},
		{
			name:     "PaddingOnlyNeverTruncates",
			filename: "shot_12345.png",
			rules:    filerenamer.Rules{PaddingEnabled: true, PaddingWidth: 4},
			expected: "shot_12345.png",
		},
		{
			name:     "PaddingOnlyKeepsLeadingZeros",
			filename: "img_0007.jpg",
			rules:    filerenamer.Rules{PaddingEnabled: true, PaddingWidth: 2},
			expected: "img_0007.jpg",
		},
		{
			name:     "PaddingOnlyWithoutDigits",
			filename: "cover.jpg",
			rules:    filerenamer.Rules{PaddingEnabled: true, PaddingWidth: 4},
			expected: "cover.jpg",
		},
		{
			name:     "PaddingOnlyIgnoresExtensionDigits",
			filename: "track.mp3",
			rules:    filerenamer.Rules{PaddingEnabled: true, PaddingWidth: 4},
			expected: "track.mp3",
		},
		{
			name:     "ReplaceAllOccurrences",
			filename: "old_old_01.txt",
			rules:    filerenamer.Rules{ReplaceEnabled: true, FindText: "old", ReplaceText: "new"},
			expected: "new_new_01.txt",
		},
		{
			name:     "ReplaceLeavesExtension",
			filename: "png_shot.png",
			rules:    filerenamer.Rules{ReplaceEnabled: true, FindText: "png", ReplaceText: "jpg"},
			expected: "jpg_shot.png",
		},
		{
			name:     "ReplaceWithEmptyFindIsNoop",
			filename: "shot.png",
			rules:    filerenamer.Rules{ReplaceEnabled: true, FindText: "", ReplaceText: "x"},
			expected: "shot.png",
		},
		{
			name:     "ReplaceDeletes",
			filename: "shot_final.png",
			rules:    filerenamer.Rules{ReplaceEnabled: true, FindText: "_final"},
			expected: "shot.png",
		},
		{
			name:     "ReplaceRunsBeforeRenumberStrip",
			filename: "shot-0007.png",
			rules: filerenamer.Rules{
				ReplaceEnabled: true, FindText: "-", ReplaceText: "_",
				RenumberEnabled: true, StartNumber: 1001,
			},
			expected: "shot.1001.png",
		},
		{
			name:     "ReplaceCanCreateStrippableSuffix",
			filename: "shotX123.png",
			rules: filerenamer.Rules{
				ReplaceEnabled: true, FindText: "X", ReplaceText: ".",
				RenumberEnabled: true, StartNumber: 1,
			},
			expected: "shot.0001.png",
		},
		{
			name:     "ExtensionOnly",
			filename: "image.TIF",
			rules:    filerenamer.Rules{ExtensionEnabled: true, NewExtension: "exr"},
			expected: "image.exr",
		},
		{
			name:     "ExtensionLeadingDotStripped",
			filename: "image.TIF",
			rules:    filerenamer.Rules{ExtensionEnabled: true, NewExtension: ".exr"},
			expected: "image.exr",
		},
		{
			name:     "ExtensionAddedWhenMissing",
			filename: "README",
			rules:    filerenamer.Rules{ExtensionEnabled: true, NewExtension: "md"},
			expected: "README.md",
		},
		{
			name:     "EmptyExtensionKeepsOriginal",
			filename: "image.TIF",
			rules:    filerenamer.Rules{ExtensionEnabled: true, NewExtension: ""},
			expected: "image.TIF",
		},
		{
			name:     "FullPipeline",
			filename: "comp_v01_0007.dpx",
			counter:  4,
			rules: filerenamer.Rules{
				ReplaceEnabled: true, FindText: "v01", ReplaceText: "v02",
				RenumberEnabled: true, StartNumber: 1001,
				PaddingEnabled: true, PaddingWidth: 5,
				ExtensionEnabled: true, NewExtension: "exr",
			},
			expected: "comp_v02.01005.exr",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, filerenamer.ComputeNewName(test.filename, test.counter, test.rules))
		})
	}
}

func TestComputeNewNameRenumberIsPureInCounter(t *testing.T) {
	rules := filerenamer.Rules{RenumberEnabled: true, StartNumber: 1001}

	for counter := 0; counter < 5; counter++ {
		first := filerenamer.ComputeNewName("shot_0007.png", counter, rules)
		second := filerenamer.ComputeNewName("shot_0007.png", counter, rules)
		assert.Equal(t, first, second)
	}

	assert.Equal(t, "shot.1001.png", filerenamer.ComputeNewName("shot_0007.png", 0, rules))
	assert.Equal(t, "shot.1004.png", filerenamer.ComputeNewName("shot_0007.png", 3, rules))
}

func TestRulesPadWidth(t *testing.T) {
	assert.Equal(t, filerenamer.DefaultPaddingWidth, filerenamer.Rules{}.PadWidth())
	assert.Equal(t, filerenamer.DefaultPaddingWidth, filerenamer.Rules{PaddingWidth: 7}.PadWidth())
	assert.Equal(t, 7, filerenamer.Rules{PaddingEnabled: true, PaddingWidth: 7}.PadWidth())

	defaults := filerenamer.DefaultRules()
	assert.Equal(t, 1001, defaults.StartNumber)
	assert.Equal(t, 4, defaults.PaddingWidth)
	assert.False(t, defaults.RenumberEnabled)
}
