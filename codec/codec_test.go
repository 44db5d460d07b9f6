package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Points [][2]float64 `json:"points"`
	Labels []int        `json:"labels"`
	Name   string       `json:"name"`
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		c, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, c.Name())
	}
	assert.Equal(t, []string{"json", "go-json"}, Names())

	c, err := Lookup("")
	require.NoError(t, err)
	assert.Equal(t, Default, c)

	_, err = Lookup("gob")
	require.ErrorIs(t, err, ErrUnknownCodec)
	assert.Contains(t, err.Error(), `"gob"`)
	assert.Contains(t, err.Error(), "json, go-json")
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, Default, OrDefault(nil))
	assert.Equal(t, JSON{}, OrDefault(JSON{}))
}

func TestCodecsAgree(t *testing.T) {
	v := payload{
		Points: [][2]float64{{0, 0.5}, {10, 0.25}, {-3.125, 7}},
		Labels: []int{0, 1, 1},
		Name:   "blobs",
	}

	std, err := JSON{}.Marshal(v)
	require.NoError(t, err)
	fast, err := GoJSON{}.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, string(std), string(fast))

	var a, b payload
	require.NoError(t, JSON{}.Unmarshal(fast, &a))
	require.NoError(t, GoJSON{}.Unmarshal(std, &b))
	assert.Equal(t, v, a)
	assert.Equal(t, v, b)
}

func TestMarshalUnsupported(t *testing.T) {
	for _, c := range registry {
		_, err := c.Marshal(make(chan int))
		assert.Error(t, err, c.Name())
	}
}

func benchmarkMarshal(b *testing.B, c Codec) {
	v := payload{Points: make([][2]float64, 4096), Labels: make([]int, 4096)}
	for i := range v.Points {
		v.Points[i] = [2]float64{float64(i) * 0.5, float64(i%97) * 1.25}
		v.Labels[i] = i % 8
	}
	warm, err := c.Marshal(v)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.SetBytes(int64(len(warm)))
	for b.Loop() {
		if _, err := c.Marshal(v); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkJSONMarshal(b *testing.B)   { benchmarkMarshal(b, JSON{}) }
func BenchmarkGoJSONMarshal(b *testing.B) { benchmarkMarshal(b, GoJSON{}) }
