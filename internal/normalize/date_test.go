package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateFormatter_Format(t *testing.T) {
	f := NewDateFormatter(nil)

	assert.Equal(t, "2026.02.09 10:15", f.Format("Wed, 9 Feb 2026 10:15:00 +0900"))
	assert.Equal(t, "2026.02.19 23:59", f.Format("Thu, 19 Feb 2026 23:59:59 +0900"))
	assert.Equal(t, "garbage", f.Format("garbage"))
	assert.Equal(t, "", f.Format(""))
}

func TestDateFormatter_FormatInLocation(t *testing.T) {
	f := NewDateFormatter(time.UTC)

	assert.Equal(t, "2026.02.09 01:15", f.Format("Wed, 9 Feb 2026 10:15:00 +0900"))
}

func TestDateFormatter_NilReceiver(t *testing.T) {
	var f *DateFormatter

	assert.Equal(t, "2026.02.09 10:15", f.Format("Wed, 9 Feb 2026 10:15:00 +0900"))
}
