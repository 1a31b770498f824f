package control

import (
	"context"
	"fmt"

	"github.com/alwitt/goutils"
	"github.com/alwitt/livegate/common"
	"github.com/apex/log"
	"github.com/go-resty/resty/v2"
	"github.com/oklog/ulid/v2"
)

// RelayedResponse verbatim response of a gateway in another region
type RelayedResponse struct {
	// StatusCode HTTP status the remote gateway answered with
	StatusCode int
	// ContentType content type of the remote response body
	ContentType string
	// Body raw remote response body
	Body []byte
}

// RegionRelay forwards stream operations to the gateway serving another region
type RegionRelay interface {
	/*
		RelayTerminate forward a stream terminate to the gateway of another region

			@param ctxt context.Context - execution context
			@param region string - target region
			@param streamID string - stream record ID
			@param authHeader string - caller's Authorization header to forward
			@returns the remote gateway's verbatim response
	*/
	RelayTerminate(
		ctxt context.Context, region, streamID, authHeader string,
	) (RelayedResponse, error)
}

// restRegionRelayImpl implements RegionRelay
type restRegionRelayImpl struct {
	goutils.Component
	config          common.RegionConfig
	requestIDHeader string
	client          *resty.Client
}

/*
NewRegionRelay define new cross region request relay

	@param config common.RegionConfig - multi region deployment settings
	@param requestIDHeader string - HTTP header to set for the request ID
	@param httpClient *resty.Client - HTTP client to use
	@return new relay
*/
func NewRegionRelay(
	config common.RegionConfig, requestIDHeader string, httpClient *resty.Client,
) (RegionRelay, error) {
	return &restRegionRelayImpl{
		Component: goutils.Component{
			LogTags: log.Fields{"module": "control", "component": "region-relay"},
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		config:          config,
		requestIDHeader: requestIDHeader,
		client:          httpClient,
	}, nil
}

func (r *restRegionRelayImpl) RelayTerminate(
	ctxt context.Context, region, streamID, authHeader string,
) (RelayedResponse, error) {
	logTags := r.GetLogTagsForContext(ctxt)

	requestURL := fmt.Sprintf(
		"%s://%s.%s/streams/%s/terminate",
		r.config.Protocol, region, r.config.FrontendDomain, streamID,
	)

	resp, err := r.client.R().
		SetContext(ctxt).
		SetHeader(r.requestIDHeader, ulid.Make().String()).
		SetHeader("Authorization", authHeader).
		Delete(requestURL)
	if err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("target-region", region).
			WithField("stream", streamID).
			Error("Cross region terminate relay failed")
		return RelayedResponse{}, err
	}

	log.
		WithFields(logTags).
		WithField("target-region", region).
		WithField("stream", streamID).
		WithField("status", resp.StatusCode()).
		Info("Relayed terminate to remote region")
	return RelayedResponse{
		StatusCode:  resp.StatusCode(),
		ContentType: resp.Header().Get("Content-Type"),
		Body:        resp.Body(),
	}, nil
}
