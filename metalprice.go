package zakat

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

const goldapiKeyEnv = "GOLDAPI_API_KEY"

var goldapiKeyFlag = flag.String("goldapi-key", "", "goldapi.io access token for fetching metal prices.\n If missing it will read the environment variable \""+goldapiKeyEnv+"\". You can get one at https://www.goldapi.io/")

func goldapiKey() string {
	// If the flag is not set, we try to read it from the environment variable.
	if *goldapiKeyFlag == "" {
		*goldapiKeyFlag = os.Getenv(goldapiKeyEnv)
	}
	return *goldapiKeyFlag
}

// troyOunceGrams converts the per-ounce price the API quotes into the
// per-gram price nisab is defined on.
var troyOunceGrams = decimal.NewFromFloat(31.1034768)

// diskCache implements a simple disk cache for HTTP responses.
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// The key includes the day, so the local cache expires daily. That
	// bounds quote reuse independently of the staleness flag.
	key := fmt.Sprintf("%s %s %s", time.Now().UTC().Format("2006-01-02"), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	file := filepath.Join(os.TempDir(), key)
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache.
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	file := filepath.Join(os.TempDir(), key)

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	_, err = f.Write(content)
	f.Close()
	return err
}

// daily returns a client with a disk cache that expires every day.
func daily() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{http.DefaultTransport}
	return client
}

// jwget performs an HTTP GET request with optional headers and
// unmarshals the JSON response into the provided data structure.
func jwget(client *http.Client, addr string, headers map[string]string, data interface{}) error {
	req, err := http.NewRequest(http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}

// jpathFloat extracts a float64 at a jsonpath from a decoded JSON value.
func jpathFloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of 1
	// answer or a single answer; keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("value at %q is not a number: %v", path, jval)
	}
	return val, nil
}

// GoldAPISource fetches gold and silver spot prices from goldapi.io.
// Responses are cached on disk for the day, so repeated computations in
// one session don't hammer the API.
type GoldAPISource struct {
	client *http.Client
	token  string
}

// NewGoldAPISource returns a price source using the access token from
// the -goldapi-key flag or the GOLDAPI_API_KEY environment variable.
func NewGoldAPISource() *GoldAPISource {
	return &GoldAPISource{client: daily(), token: goldapiKey()}
}

func symbol(basis MetalBasis) string {
	if basis == SilverBasis {
		return "XAG"
	}
	return "XAU"
}

// Quote implements PriceSource. Any transport or shape failure is
// returned to the caller; a price is never fabricated.
func (s *GoldAPISource) Quote(basis MetalBasis, currency string) (PriceQuote, error) {
	if s.token == "" {
		return PriceQuote{}, fmt.Errorf("missing goldapi.io token: set -goldapi-key or %s", goldapiKeyEnv)
	}
	addr := fmt.Sprintf("https://www.goldapi.io/api/%s/%s", symbol(basis), currency)
	var jobj any
	if err := jwget(s.client, addr, map[string]string{"x-access-token": s.token}, &jobj); err != nil {
		return PriceQuote{}, fmt.Errorf("error retrieving %s price: %w", basis, err)
	}

	// Prefer the pure-metal per-gram price; fall back to the per-ounce
	// spot converted to grams.
	perGram, err := jpathFloat(jobj, "$.price_gram_24k")
	if err != nil {
		perOunce, err2 := jpathFloat(jobj, "$.price")
		if err2 != nil {
			return PriceQuote{}, fmt.Errorf("no usable %s price in response: %w", basis, err2)
		}
		return PriceQuote{
			Basis:        basis,
			PricePerGram: M(decimal.NewFromFloat(perOunce).Div(troyOunceGrams), currency),
			FetchedAt:    fetchedAt(jobj),
		}, nil
	}
	return PriceQuote{
		Basis:        basis,
		PricePerGram: M(decimal.NewFromFloat(perGram), currency),
		FetchedAt:    fetchedAt(jobj),
	}, nil
}

// fetchedAt reads the quote timestamp, defaulting to now when absent.
func fetchedAt(jobj any) time.Time {
	ts, err := jpathFloat(jobj, "$.timestamp")
	if err != nil || ts <= 0 {
		return time.Now()
	}
	return time.Unix(int64(ts), 0)
}
