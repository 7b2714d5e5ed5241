package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sglre6355/wikibot/internal/cache"
	"github.com/sglre6355/wikibot/internal/core"
	"github.com/sglre6355/wikibot/internal/modules/wiki/domain"
	"github.com/sglre6355/wikibot/internal/wiki"
)

// Service runs the wiki use cases. Module data and page existence are
// cached; writes invalidate the existence of the titles they touch.
type Service struct {
	wiki            core.Wiki
	modsModule      string
	languagesModule string

	mods      *cache.Value[map[string]domain.Mod]
	languages *cache.Value[[]domain.Language]
	exists    *cache.Map[string, bool]
}

// NewService creates a Service reading module data from the given modules.
func NewService(w core.Wiki, modsModule, languagesModule string, ttl time.Duration, opts ...cache.Option) *Service {
	named := func(name string) []cache.Option {
		return append([]cache.Option{cache.WithName(name)}, opts...)
	}
	return &Service{
		wiki:            w,
		modsModule:      modsModule,
		languagesModule: languagesModule,
		mods:            cache.NewValue[map[string]domain.Mod](ttl, named("mods")...),
		languages:       cache.NewValue[[]domain.Language](ttl, named("languages")...),
		exists:          cache.NewMap[string, bool](ttl, named("page_exists")...),
	}
}

// MaxSuggestions caps the alternatives offered for an unknown mod.
const MaxSuggestions = 3

// ModLookup is the outcome of a mod search.
type ModLookup struct {
	Mod   domain.Mod
	Found bool
	// Suggestions are similar mod names when nothing matched.
	Suggestions []string
}

func (s *Service) modList(ctx context.Context) (map[string]domain.Mod, error) {
	return s.mods.GetOrRetrieve(func() (map[string]domain.Mod, error) {
		out, err := s.wiki.InvokeModule(ctx, s.modsModule, domain.ModsExpression)
		if err != nil {
			return nil, err
		}
		return domain.ParseMods(out.Return)
	})
}

// FindMod looks a mod up by abbreviation or name.
func (s *Service) FindMod(ctx context.Context, query string) (ModLookup, error) {
	mods, err := s.modList(ctx)
	if err != nil {
		return ModLookup{}, err
	}

	if mod, ok := domain.FindMod(mods, query); ok {
		return ModLookup{Mod: mod, Found: true}, nil
	}
	return ModLookup{Suggestions: domain.SuggestMods(mods, query, MaxSuggestions)}, nil
}

// Languages returns the wiki languages ordered by code.
func (s *Service) Languages(ctx context.Context) ([]domain.Language, error) {
	return s.languages.GetOrRetrieve(func() ([]domain.Language, error) {
		out, err := s.wiki.InvokeModule(ctx, s.languagesModule, domain.LanguagesExpression)
		if err != nil {
			return nil, err
		}
		return domain.ParseLanguages(out.Return)
	})
}

// PageURL returns the article URL of title.
func (s *Service) PageURL(title string) string {
	return s.wiki.PageURL(title)
}

// PageExists reports whether title exists, from cache when fresh.
func (s *Service) PageExists(ctx context.Context, title string) (bool, error) {
	return s.exists.GetOrRetrieve(title, func(title string) (bool, error) {
		return s.wiki.PageExists(ctx, title)
	})
}

// ResolveLinks checks every title and returns its link.
func (s *Service) ResolveLinks(ctx context.Context, titles []string) ([]domain.Link, error) {
	links := make([]domain.Link, 0, len(titles))
	for _, title := range titles {
		exists, err := s.PageExists(ctx, title)
		if err != nil {
			return nil, fmt.Errorf("failed to check %q: %w", title, err)
		}
		links = append(links, domain.Link{Title: title, URL: s.wiki.PageURL(title), Exists: exists})
	}
	return links, nil
}

// PageLines returns the wikitext of title split into lines. Code fences in
// the text are broken up so they cannot close the block it is shown in.
func (s *Service) PageLines(ctx context.Context, title string) ([]string, error) {
	text, err := s.wiki.PageText(ctx, title)
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.ReplaceAll(text, "```", "`\u200b``"), "\n"), nil
}

// Move carries out a confirmed move.
func (s *Service) Move(ctx context.Context, p domain.MoveProposal) (wiki.MoveResult, error) {
	defer s.touch(p.From, p.To)
	return s.wiki.MovePage(ctx, p.From, p.To, domain.EditSummary(p.Requester, ""), p.LeaveRedirect)
}

// Delete carries out a confirmed deletion.
func (s *Service) Delete(ctx context.Context, p domain.DeleteProposal) (wiki.DeleteResult, error) {
	defer s.touch(p.Title)
	return s.wiki.DeletePage(ctx, p.Title, domain.EditSummary(p.Requester, p.Reason))
}

// Upload carries out a confirmed upload.
func (s *Service) Upload(ctx context.Context, p domain.UploadProposal) (wiki.UploadResult, error) {
	defer s.touch("File:" + p.Filename)
	return s.wiki.UploadByURL(ctx, p.Filename, p.URL, domain.EditSummary(p.Requester, p.Comment))
}

// Redirect carries out a confirmed redirect.
func (s *Service) Redirect(ctx context.Context, p domain.RedirectProposal) (wiki.EditResult, error) {
	defer s.touch(p.From)
	return s.wiki.EditPage(ctx, p.From, domain.RedirectText(p.To), domain.EditSummary(p.Requester, ""))
}

func (s *Service) touch(titles ...string) {
	for _, title := range titles {
		s.exists.Invalidate(title)
	}
}
