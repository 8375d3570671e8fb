// Package imagegen fetches AI-generated images over HTTP.
//
// The service is addressed as <endpoint>/<url-escaped prompt>?width=..&height=..
// with a random seed between 10000 and 99999 on every request, the configured
// model, and nologo/private/enhance/safe flags. The prompt gets a fixed
// ", style realistic, aspect ratio 16:9" suffix before escaping.
//
// Transport failures and non-2xx responses are returned as failure.Network
// errors; a non-2xx status is additionally an *HTTPError in the chain.
package imagegen
