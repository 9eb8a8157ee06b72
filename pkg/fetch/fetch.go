// Copyright 2023 Demobox
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fetch contains functions for downloading content via HTTP.
package fetch

import (
	"io"
	"net/http"
	"os"

	"github.com/DemoboxApp/docker-helper-symfony/pkg/provisionerror"
	"github.com/hashicorp/go-retryablehttp"
)

const userAgent = "DemoboxProvisioner"

// File downloads a file from a URL and writes it to the provided path.
func File(url, outPath string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return provisionerror.InternalErrorf("creating %s: %v", outPath, err)
	}
	defer out.Close()
	response, err := doGet(url)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	if _, err := io.Copy(out, response.Body); err != nil {
		return provisionerror.InternalErrorf("writing %s: %v", outPath, err)
	}
	return nil
}

// doGet performs an HTTP GET request for a URL, retrying transient failures.
func doGet(url string) (*http.Response, error) {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, provisionerror.UserErrorf("fetching %s: %v", url, err)
	}

	req.Header.Set("User-Agent", userAgent)

	response, err := retryClient.StandardClient().Do(req)
	if err != nil {
		return nil, provisionerror.UserErrorf("requesting %s: %v", url, err)
	}
	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		defer response.Body.Close()
		return nil, provisionerror.UserErrorf("fetching %s returned HTTP status: %d", url, response.StatusCode)
	}
	return response, err
}
