// Package s3 provides an S3 implementation of the blobstore.Store interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket", "experiments/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	info, err := trace.Writer{Store: store}.Save(ctx, "kmeans_log.json", tr)
//
// Uploads go through the SDK's managed uploader, so large traces are sent
// as concurrent multipart uploads. Listing follows continuation tokens.
package s3
