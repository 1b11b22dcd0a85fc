package candidates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPersonNameAccepts(t *testing.T) {
	valid := []string{
		"Jane Doe",
		"Mary-Anne Smith",
		"Sean O'Connor",
		"José García",
		"Robert Van Nelson",
		"John Smith Jr.",
	}
	for _, name := range valid {
		assert.True(t, IsValidPersonName(name, "Acme Corp"), name)
	}
}

func TestIsValidPersonNameRejectsNavigationAndTitles(t *testing.T) {
	invalid := []string{
		"About Us",
		"Contact Home",
		"Vice President",
		"Chief Officer",
		"Executive Team",
	}
	for _, name := range invalid {
		assert.False(t, IsValidPersonName(name, "Acme Corp"), name)
	}
}

func TestIsValidPersonNameRejectsStructure(t *testing.T) {
	invalid := []string{
		"",
		"Jane",
		"jane doe",
		"Jane D0e",
		"J Doe",
	}
	for _, name := range invalid {
		assert.False(t, IsValidPersonName(name, "Acme Corp"), name)
	}
}

func TestIsValidPersonNameRejectsCompanyName(t *testing.T) {
	assert.False(t, IsValidPersonName("Bruker Scientific", "Bruker Scientific Instruments"))
	assert.False(t, IsValidPersonName("Nordson Corp", "Acme Inc"))
}

func TestIsLowQualityName(t *testing.T) {
	low := []string{
		"Smith CFO",
		"Eden Prairie",
		"Annual Report",
		"Treasury Department",
		"Of The",
		"Al Bo",
	}
	for _, name := range low {
		assert.True(t, IsLowQualityName(name), name)
	}

	assert.False(t, IsLowQualityName("Jane Doe"))
	assert.False(t, IsLowQualityName("Michael Savinelli"))
}
