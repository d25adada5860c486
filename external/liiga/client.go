package liiga

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"

	"github.com/liigadoku/liigadoku-api/internal/domain/player"
	"github.com/liigadoku/liigadoku-api/internal/platform/logging"
)

const (
	DefaultBaseURL = "https://liiga.fi/api/v1"

	// profileBatchSize is how many profile fetches run between rate-limiter
	// waits. The upstream API tolerates bursts of this size.
	profileBatchSize = 99

	defaultTimeout       = 30 * time.Second
	defaultBatchInterval = time.Second
)

type Config struct {
	BaseURL       string
	Timeout       time.Duration
	BatchInterval time.Duration
}

// Client fetches player data from the Liiga statistics API: per-season id
// listings and per-player career profiles.
type Client struct {
	http     *fasthttp.Client
	baseURL  string
	timeout  time.Duration
	limiter  *rate.Limiter
	validate *validator.Validate
	logger   *logging.Logger
}

func NewClient(cfg Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	interval := cfg.BatchInterval
	if interval <= 0 {
		interval = defaultBatchInterval
	}

	return &Client{
		http: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		baseURL:  baseURL,
		timeout:  timeout,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		validate: validator.New(),
		logger:   logger,
	}
}

// PersonID derives the stable person id from an upstream fiha id. The id is
// a name-based uuid of the upstream person path, so re-imports produce the
// same id for the same athlete.
func PersonID(fihaID int64) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("/api/v1/person/%d/", fihaID))).String()
}

type seasonListEntry struct {
	FihaID *int64 `json:"fiha_id"`
	ID     *int64 `json:"id"`
}

// FetchSeasonPersonIDs collects the upstream player ids for every regular
// season in [start, end]. Both the stats and info listings are read per
// season because neither alone covers all years.
func (c *Client) FetchSeasonPersonIDs(ctx context.Context, start, end int) ([]int64, error) {
	if start > end {
		return nil, errors.Newf("invalid season range %d..%d", start, end)
	}

	seen := make(map[int64]struct{})
	var ids []int64

	for year := start; year <= end; year++ {
		urls := []string{
			fmt.Sprintf("%s/players/stats/%d/runkosarja", c.baseURL, year),
			fmt.Sprintf("%s/players/info?season=%d&tournament=runkosarja", c.baseURL, year),
		}

		for _, url := range urls {
			var entries []seasonListEntry
			if err := c.getJSON(ctx, url, &entries); err != nil {
				return nil, err
			}

			for _, e := range entries {
				id := e.ID
				if e.FihaID != nil {
					id = e.FihaID
				}
				if id == nil {
					continue
				}
				if _, dup := seen[*id]; dup {
					continue
				}
				seen[*id] = struct{}{}
				ids = append(ids, *id)
			}
		}
	}

	c.logger.InfoContext(ctx, "season player ids fetched",
		"start", start,
		"end", end,
		"ids", len(ids),
	)

	return ids, nil
}

type profileSeason struct {
	Season         int    `json:"season"`
	Games          int    `json:"games"`
	Goals          int    `json:"goals"`
	Assists        int    `json:"assists"`
	Points         int    `json:"points"`
	PenaltyMinutes int    `json:"penaltyMinutes"`
	PlusMinus      int    `json:"plusMinus"`
	Shots          int    `json:"shots"`
	TeamName       string `json:"teamName"`
}

type profile struct {
	FihaID      int64  `json:"fihaId" validate:"required"`
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	DateOfBirth string `json:"dateOfBirth" validate:"required"`
	Historical  struct {
		Regular []profileSeason `json:"regular"`
	} `json:"historical"`
}

// FetchProfiles resolves career profiles for the given upstream ids and
// flattens them into season records. Fetches run in rate-limited batches;
// profiles failing schema validation are logged and skipped. Upstream labels
// a season by its end year, the game labels it by its start year, hence the
// minus one.
func (c *Client) FetchProfiles(ctx context.Context, ids []int64) ([]player.Season, error) {
	var seasons []player.Season

	for batchStart := 0; batchStart < len(ids); batchStart += profileBatchSize {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "wait profile batch")
		}

		batchEnd := min(batchStart+profileBatchSize, len(ids))
		batch := ids[batchStart:batchEnd]

		fetch := pool.NewWithResults[*profile]().WithContext(ctx).WithMaxGoroutines(len(batch))
		for _, id := range batch {
			id := id
			fetch.Go(func(ctx context.Context) (*profile, error) {
				var p profile
				url := fmt.Sprintf("%s/players/info/%d", c.baseURL, id)
				if err := c.getJSON(ctx, url, &p); err != nil {
					return nil, err
				}
				if err := c.validate.Struct(p); err != nil {
					c.logger.WarnContext(ctx, "player profile failed validation",
						"fiha_id", id,
						"error", err,
					)
					return nil, nil
				}
				return &p, nil
			})
		}

		profiles, err := fetch.Wait()
		if err != nil {
			return nil, err
		}

		for _, p := range profiles {
			if p == nil {
				continue
			}
			seasons = append(seasons, flattenProfile(p)...)
		}

		c.logger.InfoContext(ctx, "profile batch fetched",
			"from", batchStart,
			"to", batchEnd,
			"seasons", len(seasons),
		)
	}

	return seasons, nil
}

type preSeasonEntry struct {
	ID          int64  `json:"id" validate:"required"`
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	TeamName    string `json:"teamName" validate:"required"`
	DateOfBirth string `json:"dateOfBirth" validate:"required"`
}

// FetchPreSeason fetches exhibition-game rosters for a season. The records
// carry no statistics; they only establish the person-team link.
func (c *Client) FetchPreSeason(ctx context.Context, season int) ([]player.Season, error) {
	url := fmt.Sprintf("%s/players/info?tournament=valmistavat_ottelut&season=%d", c.baseURL, season)

	var entries []preSeasonEntry
	if err := c.getJSON(ctx, url, &entries); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		c.logger.WarnContext(ctx, "no pre-season data", "season", season)
	}

	out := make([]player.Season, 0, len(entries))
	for _, e := range entries {
		if err := c.validate.Struct(e); err != nil {
			continue
		}
		out = append(out, player.Season{
			Person:      PersonID(e.ID),
			Name:        formatName(e.FirstName) + " " + formatName(e.LastName),
			DateOfBirth: e.DateOfBirth,
			Season:      season,
			TeamName:    e.TeamName,
			SourceID:    e.ID,
		})
	}

	return out, nil
}

func flattenProfile(p *profile) []player.Season {
	name := formatName(p.FirstName) + " " + formatName(p.LastName)
	person := PersonID(p.FihaID)

	out := make([]player.Season, 0, len(p.Historical.Regular))
	for _, s := range p.Historical.Regular {
		out = append(out, player.Season{
			Person:      person,
			Name:        name,
			DateOfBirth: p.DateOfBirth,
			Season:      s.Season - 1,
			TeamName:    s.TeamName,
			SourceID:    p.FihaID,
			Stats: player.Stats{
				Games:          s.Games,
				Goals:          s.Goals,
				Assists:        s.Assists,
				Points:         s.Points,
				PenaltyMinutes: s.PenaltyMinutes,
				PlusMinus:      s.PlusMinus,
				Shots:          s.Shots,
			},
		})
	}

	return out
}

// formatName lowercases the raw name and capitalizes the first letter of
// each space- or hyphen-separated part, so upstream all-caps names render
// normally.
func formatName(raw string) string {
	runes := []rune(strings.ToLower(strings.TrimSpace(raw)))
	capitalizeNext := true
	for i, r := range runes {
		if capitalizeNext && unicode.IsLetter(r) {
			runes[i] = unicode.ToUpper(r)
			capitalizeNext = false
			continue
		}
		if r == ' ' || r == '-' {
			capitalizeNext = true
		}
	}

	return string(runes)
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrapf(err, "GET %s", url)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if err := c.http.DoTimeout(req, resp, c.timeout); err != nil {
		return errors.Wrapf(err, "GET %s", url)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return errors.Newf("GET %s: unexpected status %d", url, resp.StatusCode())
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := resp.BodyWriteTo(buf); err != nil {
		return errors.Wrapf(err, "read body %s", url)
	}

	if err := sonic.Unmarshal(buf.B, out); err != nil {
		return errors.Wrapf(err, "decode %s", url)
	}

	return nil
}
