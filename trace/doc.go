// Package trace records the iteration history of a clustering run and
// persists it to a blob store.
//
// A trace holds the input points, the initial centroids and, for every
// iteration, the centroid set and point labels. Its JSON layout is
//
//	{"points":[[x,y],...],"initial":[[x,y],...],
//	 "iterations":[{"centroids":[[x,y],...],"labels":[0,1,...],"shift":0.5}]}
//
// plus run metadata. Traces can be stored uncompressed, LZ4 or zstd; the
// compression is encoded in the blob name (".json", ".json.lz4",
// ".json.zst") so Load needs no extra metadata.
//
//	res, _ := lloyd.Sequential(points, 3, lloyd.WithHistory())
//	t, _ := trace.FromResult(points, res, trace.Meta{Engine: "sequential", K: 3})
//
//	w := &trace.Writer{Store: store, Compression: trace.Zstd}
//	name, _ := trace.NextName(ctx, store, "")
//	info, _ := w.Save(ctx, name, t)
package trace
