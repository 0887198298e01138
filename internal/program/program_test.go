package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{path: `C:\setup\Chrome.exe`, want: KindExecutable},
		{path: "/tmp/SETUP.EXE", want: KindExecutable},
		{path: "office.msi", want: KindPackage},
		{path: "office.MsI", want: KindPackage},
		{path: "drivers/net.inf", want: KindDriverInfo},
		{path: "readme.txt", want: KindUnsupported},
		{path: "noext", want: KindUnsupported},
		{path: "archive.exe.zip", want: KindUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.path))
			assert.Equal(t, tt.want != KindUnsupported, Accepts(tt.path))
		})
	}
}

func TestEntry(t *testing.T) {
	e := New("  C:\\Tools\\Setup.EXE ")

	assert.Equal(t, `C:\Tools\Setup.EXE`, e.Path)
	assert.Equal(t, ".exe", e.Ext())
	assert.Equal(t, KindExecutable, e.Kind())
	assert.Equal(t, "Setup.EXE", e.Name())
	assert.Equal(t, "c:/tools/setup.exe", e.Key())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "exe", KindExecutable.String())
	assert.Equal(t, "msi", KindPackage.String())
	assert.Equal(t, "inf", KindDriverInfo.String())
	assert.Equal(t, "unsupported", KindUnsupported.String())
}
