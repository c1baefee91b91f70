package replay

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/opsconsole/pkg/ctdf"
)

func TestWriteCSV(t *testing.T) {
	position := positionEvent(1656615510)
	position.Position.Speed = 4.5
	signOn := statusEvent(ctdf.VehicleEventTypeSignOn, 1656614337)
	signOn.TripID = "trip-a"

	var out bytes.Buffer
	require.NoError(t, WriteCSV(&out, []*ctdf.VehicleEvent{position, signOn}, time.UTC))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "id,type,timestamp,datetime,trip_id,route_id,route_short_name,latitude,longitude,speed,bearing", lines[0])
	assert.Equal(t, "signOn-1656614337,signOn,1656614337,2022-06-30 18:38:57,trip-a,,,,,,", lines[1])
	assert.Equal(t, "pos-1656615510,vehiclePosition,1656615510,2022-06-30 18:58:30,,,,51.5,-0.1,4.5,0", lines[2])
}
