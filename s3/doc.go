// Package s3 provides utility helpers layered over the AWS SDK v2 S3 client.
//
// It covers the operations that come up constantly when working with S3 but
// that the SDK leaves to the caller: parsing and building S3 URLs, streaming
// paginated key listings, timestamp-conditional object sync, and uploading
// single files or whole directory trees with content-type detection.
//
// Example usage:
//
//	client, err := s3.New(ctx, s3.WithRegion("eu-west-1"))
//	if err != nil {
//	    return err
//	}
//
//	loc, err := s3.ParseURL("s3://my-bucket/reports/2024.csv")
//	if err != nil {
//	    return err
//	}
//
//	keys, iterErr := client.IterKeys(ctx, loc.Bucket, "reports/")
//	for obj := range keys {
//	    fmt.Println(obj.Key, obj.Size)
//	}
//	if err := iterErr(); err != nil {
//	    return err
//	}
package s3
