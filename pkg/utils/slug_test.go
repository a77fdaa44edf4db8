package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "acme-talent", Slugify("  Acme   Talent! "))
	assert.Equal(t, "são-paulo-tech-2025", Slugify("São Paulo / Tech 2025"))
	assert.Equal(t, "", Slugify("!!!"))
}
