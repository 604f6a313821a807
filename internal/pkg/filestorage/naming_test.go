package filestorage

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPurpose_Allows(t *testing.T) {
	assert.True(t, PurposeProfileImage.Allows("me.PNG"))
	assert.True(t, PurposeLogo.Allows("logo.jpeg"))
	assert.False(t, PurposeProfileImage.Allows("cv.pdf"))

	assert.True(t, PurposeCV.Allows("cv.docx"))
	assert.True(t, PurposeCoverLetter.Allows("letter.PDF"))
	assert.False(t, PurposeCV.Allows("cv.exe"))
	assert.False(t, PurposeCV.Allows("noext"))

	assert.True(t, IsImage("a.jpg"))
	assert.True(t, IsDocument("a.doc"))
}

func TestGenerateName(t *testing.T) {
	name := GenerateName("ana", PurposeCV, "My CV.PDF")
	assert.Regexp(t, regexp.MustCompile(`^ana_cv_\d+_[0-9a-f]{8}\.pdf$`), name)
	assert.NotEqual(t, name, GenerateName("ana", PurposeCV, "My CV.PDF"))
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "passwd", SanitizeName("../../etc/passwd"))
	assert.Equal(t, "file.png", SanitizeName(`..\..\file.png`))
	assert.Equal(t, "", SanitizeName(""))
	assert.Equal(t, "", SanitizeName("/"))
	assert.Equal(t, "x.pdf", SanitizeName("x.pdf"))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentType("a.pdf"))
	assert.Equal(t, "image/png", ContentType("a.PNG"))
	assert.Equal(t, "application/octet-stream", ContentType("a.unknownext"))
}
