package utils

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStoreProbe verifies that a user supplied object store URL points at a
// reachable S3 bucket
type ObjectStoreProbe interface {
	/*
		Probe check whether the object store URL names a reachable bucket

			@param ctxt context.Context - execution context
			@param storeURL string - s3 / s3+http / s3+https style storage URL
	*/
	Probe(ctxt context.Context, storeURL string) error
}

// s3ProbeImpl implements ObjectStoreProbe
type s3ProbeImpl struct {
	goutils.Component
}

/*
NewObjectStoreProbe define new S3 object store probe

	@returns new probe
*/
func NewObjectStoreProbe() (ObjectStoreProbe, error) {
	return &s3ProbeImpl{
		Component: goutils.Component{
			LogTags: log.Fields{"module": "utils", "component": "object-store-probe"},
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
	}, nil
}

// parseStoreURL split an object store URL into its S3 connection parts.
//
// Accepted forms are "s3://key:secret@host/bucket", "s3+http://..." and
// "s3+https://...". Plain "s3" implies TLS.
func parseStoreURL(storeURL string) (endpoint, accessKey, secretKey, bucket string, useTLS bool, err error) {
	parsed, parseErr := url.Parse(storeURL)
	if parseErr != nil {
		err = parseErr
		return
	}
	switch parsed.Scheme {
	case "s3", "s3+https":
		useTLS = true
	case "s3+http":
		useTLS = false
	default:
		err = fmt.Errorf("unsupported object store scheme '%s'", parsed.Scheme)
		return
	}
	if parsed.User != nil {
		accessKey = parsed.User.Username()
		secretKey, _ = parsed.User.Password()
	}
	endpoint = parsed.Host
	bucket = strings.Trim(parsed.Path, "/")
	if endpoint == "" || bucket == "" {
		err = fmt.Errorf("object store URL missing host or bucket")
	}
	return
}

func (s *s3ProbeImpl) Probe(ctxt context.Context, storeURL string) error {
	logTags := s.GetLogTagsForContext(ctxt)

	endpoint, accessKey, secretKey, bucket, useTLS, err := parseStoreURL(storeURL)
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Object store URL rejected")
		return err
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useTLS,
	})
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Unable to define minio S3 client")
		return err
	}

	exists, err := client.BucketExists(ctxt, bucket)
	if err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("endpoint", endpoint).
			WithField("bucket", bucket).
			Error("Object store probe failed")
		return err
	}
	if !exists {
		return fmt.Errorf("bucket '%s' does not exist at '%s'", bucket, endpoint)
	}

	log.
		WithFields(logTags).
		WithField("endpoint", endpoint).
		WithField("bucket", bucket).
		Debug("Object store probe passed")
	return nil
}
