package calendar

import (
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
)

// catalog mirrors a small vaccine catalog: a male-only vaccine, a female-only
// vaccine and a universal one, all drafts until a test activates them.
type catalog struct {
	male, female, universal domain.Vaccine
	doses                   []domain.VaccineDose
}

func newCatalog() *catalog {
	c := &catalog{
		male:      domain.Vaccine{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), Name: "Male vaccine", ApplicableForMale: true},
		female:    domain.Vaccine{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), Name: "Female vaccine", ApplicableForFemale: true},
		universal: domain.Vaccine{ID: uuid.MustParse("00000000-0000-0000-0000-000000000003"), Name: "Universal vaccine", ApplicableForMale: true, ApplicableForFemale: true},
	}
	return c
}

func (c *catalog) addDose(v domain.Vaccine, id string, weeks int) {
	c.doses = append(c.doses, domain.VaccineDose{
		ID:        uuid.MustParse(id),
		VaccineID: v.ID,
		Name:      v.Name + " dose",
		WeekAge:   weeks,
	})
}

// build attaches the current vaccine state to every dose.
func (c *catalog) build() []domain.VaccineDose {
	byID := map[uuid.UUID]domain.Vaccine{c.male.ID: c.male, c.female.ID: c.female, c.universal.ID: c.universal}
	out := make([]domain.VaccineDose, len(c.doses))
	for i, d := range c.doses {
		d.Vaccine = byID[d.VaccineID]
		out[i] = d
	}
	return out
}

func standardCatalog() *catalog {
	c := newCatalog()
	// Male doses created in reverse order.
	c.addDose(c.male, "00000000-0000-0000-0001-000000000003", 3)
	c.addDose(c.male, "00000000-0000-0000-0001-000000000001", 1)
	c.addDose(c.female, "00000000-0000-0000-0002-000000000002", 2)
	c.addDose(c.female, "00000000-0000-0000-0002-000000000004", 4)
	c.addDose(c.universal, "00000000-0000-0000-0003-000000000001", 1)
	c.addDose(c.universal, "00000000-0000-0000-0003-000000000100", 100)
	return c
}

func boy() domain.Child {
	return domain.Child{ID: uuid.New(), Name: "Emir", DateOfBirth: day(2021, time.June, 6), Gender: domain.GenderMale}
}

func girl() domain.Child {
	return domain.Child{ID: uuid.New(), Name: "Ayla", DateOfBirth: day(2021, time.June, 6), Gender: domain.GenderFemale}
}

func collectVaccinations(t *testing.T, child domain.Child, doses []domain.VaccineDose) []domain.VaccinationEvent {
	t.Helper()
	seq, err := VaccinationEvents(child, doses)
	require.NoError(t, err)

	var out []domain.VaccinationEvent
	for e := range seq {
		v, ok := e.(domain.VaccinationEvent)
		require.True(t, ok)
		out = append(out, v)
	}
	return out
}

// ---------------------------------------------------------------------------
// VaccinationEvents
// ---------------------------------------------------------------------------

func TestVaccinationEvents_NoActiveVaccines(t *testing.T) {
	t.Parallel()

	events := collectVaccinations(t, boy(), standardCatalog().build())
	assert.Empty(t, events)
}

func TestVaccinationEvents_ActiveMaleVaccine(t *testing.T) {
	t.Parallel()

	c := standardCatalog()
	c.male.IsActive = true
	child := boy()

	events := collectVaccinations(t, child, c.build())

	require.Len(t, events, 2)
	assert.Equal(t, day(2021, time.June, 13), events[0].Date())
	assert.Equal(t, 1, events[0].WeekAge())
	assert.Equal(t, day(2021, time.June, 27), events[1].Date())
	assert.Equal(t, 3, events[1].WeekAge())
	for _, e := range events {
		assert.Equal(t, child.ID, e.Child.ID)
		require.Len(t, e.Doses, 1)
	}
}

func TestVaccinationEvents_FemaleOnlyVaccineSkipsBoys(t *testing.T) {
	t.Parallel()

	c := standardCatalog()
	c.female.IsActive = true

	assert.Empty(t, collectVaccinations(t, boy(), c.build()))
	assert.Len(t, collectVaccinations(t, girl(), c.build()), 2)
}

func TestVaccinationEvents_GroupsSameDate(t *testing.T) {
	t.Parallel()

	c := standardCatalog()
	c.male.IsActive = true
	c.universal.IsActive = true
	child := boy()

	events := collectVaccinations(t, child, c.build())

	require.Len(t, events, 3)

	first := events[0]
	require.Len(t, first.Doses, 2)
	assert.Equal(t, c.male.ID, first.Doses[0].VaccineID, "ties ordered by vaccine id")
	assert.Equal(t, c.universal.ID, first.Doses[1].VaccineID)
	assert.Equal(t,
		"vaccination/child-"+child.ID.String()+"/doses-00000000-0000-0000-0001-000000000001,00000000-0000-0000-0003-000000000001",
		first.EventKey())
	assert.Equal(t, "Male vaccine, Universal vaccine", first.Context()["vaccine_names"])

	assert.Equal(t, 3, events[1].WeekAge())
	assert.Equal(t, 100, events[2].WeekAge())
	assert.Equal(t, day(2023, time.May, 7), events[2].Date())
}

func TestVaccinationEvents_TieBreakByDoseID(t *testing.T) {
	t.Parallel()

	c := newCatalog()
	c.universal.IsActive = true
	c.addDose(c.universal, "00000000-0000-0000-0003-00000000000b", 8)
	c.addDose(c.universal, "00000000-0000-0000-0003-00000000000a", 8)

	events := collectVaccinations(t, girl(), c.build())

	require.Len(t, events, 1)
	ids := events[0].DoseIDs()
	assert.Equal(t, []string{
		"00000000-0000-0000-0003-00000000000a",
		"00000000-0000-0000-0003-00000000000b",
	}, ids)
}

func TestVaccinationEvents_UnknownGender(t *testing.T) {
	t.Parallel()

	child := boy()
	child.Gender = domain.Gender("OTHER")

	_, err := VaccinationEvents(child, standardCatalog().build())
	require.ErrorIs(t, err, domain.ErrUnknownGender)
}

func TestVaccinationEvents_Restartable(t *testing.T) {
	t.Parallel()

	c := standardCatalog()
	c.male.IsActive = true

	seq, err := VaccinationEvents(boy(), c.build())
	require.NoError(t, err)

	assert.Equal(t, slices.Collect(seq), slices.Collect(seq))
}

func TestVaccinationEvents_DoesNotReorderInput(t *testing.T) {
	t.Parallel()

	c := standardCatalog()
	c.male.IsActive = true
	doses := c.build()
	before := slices.Clone(doses)

	_ = collectVaccinations(t, boy(), doses)
	assert.Equal(t, before, doses)
}
