package build

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/gosimple/slug"

	"github.com/Happy-Ferret/fledermaus/internal/config"
	"github.com/Happy-Ferret/fledermaus/internal/document"
	"github.com/Happy-Ferret/fledermaus/internal/logfields"
	"github.com/Happy-Ferret/fledermaus/internal/paginate"
	"github.com/Happy-Ferret/fledermaus/internal/query"
	"github.com/Happy-Ferret/fledermaus/internal/render"
	"github.com/Happy-Ferret/fledermaus/internal/source"
)

// Field names the collection expansion sets on listing documents.
const (
	KeyCollection = "collection"
	KeyTerm       = "term"
)

func stageLoadConfig(_ context.Context, st *State) error {
	set, err := config.Load(filepath.Join(st.Root, st.Project.ConfigDir))
	if err != nil {
		return err
	}
	st.Configs = set
	return nil
}

func stageLoadSources(_ context.Context, st *State) error {
	loader := source.NewLoader(
		filepath.Join(st.Root, st.Project.ContentDir),
		st.Project.Extensions,
		document.Options{
			FieldParsers: DefaultFieldParsers(),
			CutTag:       st.Project.CutTag,
			Renderers:    render.Default(),
		},
	)

	docs, err := loader.Load()
	if err != nil {
		return err
	}

	// Discovery order is not guaranteed; re-establish a deterministic
	// order before any query ordering is applied.
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].SourcePath < docs[j].SourcePath
	})

	st.Documents = docs
	st.Report.DocumentsParsed = len(docs)
	st.Recorder.DocumentsParsed(len(docs))
	return nil
}

func stageAssembleCollections(_ context.Context, st *State) error {
	for _, col := range st.Project.Collections {
		listings, err := expandCollection(st.Documents, col)
		if err != nil {
			return fmt.Errorf("collection %s: %w", col.Name, err)
		}
		st.Listings = append(st.Listings, listings...)
		slog.Info("Collection assembled", logfields.Collection(col.Name), logfields.Count(len(listings)))
	}
	st.Report.ListingsCreated = len(st.Listings)
	return nil
}

func expandCollection(docs []*document.Document, col config.Collection) ([]*document.Document, error) {
	criteria, err := criteriaFromSpec(col.Filter)
	if err != nil {
		return nil, err
	}

	selected := query.Filter(docs, criteria)
	if len(col.Order) > 0 {
		selected = query.Order(selected, col.Order)
	}

	if col.Paginate == nil {
		return nil, &paginate.ConfigurationError{Option: "paginate"}
	}

	if col.GroupBy == "" {
		pages, err := paginate.Paginate(selected, paginate.Options{
			URLPrefix: col.Paginate.URLPrefix,
			PerPage:   col.Paginate.PerPage,
			Layout:    col.Paginate.Layout,
		})
		if err != nil {
			return nil, err
		}
		annotateListings(pages, col.Name, "")
		return pages, nil
	}

	groups := query.Group(selected, col.GroupBy)
	terms := make([]string, 0, len(groups))
	for term := range groups {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	var listings []*document.Document
	for _, term := range terms {
		pages, err := paginate.Paginate(groups[term], paginate.Options{
			URLPrefix: col.Paginate.URLPrefix + "/" + slug.Make(term),
			PerPage:   col.Paginate.PerPage,
			Layout:    col.Paginate.Layout,
		})
		if err != nil {
			return nil, err
		}
		annotateListings(pages, col.Name, term)
		listings = append(listings, pages...)
	}
	return listings, nil
}

func annotateListings(pages []*document.Document, collection, term string) {
	for _, page := range pages {
		page.Fields[KeyCollection] = collection
		if term != "" {
			page.Fields[KeyTerm] = term
		}
	}
}

// criteriaFromSpec converts a YAML filter mapping to query criteria.
// String values wrapped in slashes ("/^posts//") compile to patterns;
// everything else is an exact-match value.
func criteriaFromSpec(filter map[string]any) (query.Criteria, error) {
	criteria := make(query.Criteria, len(filter))
	for name, v := range filter {
		s, ok := v.(string)
		if ok && len(s) >= 2 && strings.HasPrefix(s, "/") && strings.HasSuffix(s, "/") {
			re, err := regexp.Compile(s[1 : len(s)-1])
			if err != nil {
				return nil, fmt.Errorf("filter %s: invalid pattern %s: %w", name, s, err)
			}
			criteria[name] = re
			continue
		}
		criteria[name] = v
	}
	return criteria, nil
}

func stageGeneratePages(_ context.Context, st *State) error {
	all := make([]*document.Document, 0, len(st.Documents)+len(st.Listings))
	all = append(all, st.Documents...)
	all = append(all, st.Listings...)

	langs := make([]string, 0, len(st.Configs))
	for lang := range st.Configs {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	st.Report.Languages = langs

	multiLang := len(langs) > 1 || (len(langs) == 1 && langs[0] != config.BaseKey)

	for _, lang := range langs {
		cfg := st.Configs[lang]
		for _, doc := range all {
			page, err := st.Generator.GeneratePage(doc, cfg)
			if err != nil {
				return err
			}
			if multiLang {
				page.PagePath = lang + "/" + page.PagePath
			}
			st.pages = append(st.pages, page)
		}
	}

	st.Report.PagesGenerated = len(st.pages)
	st.Recorder.PagesGenerated(len(st.pages))
	return nil
}

func stageWritePages(_ context.Context, st *State) error {
	for _, page := range st.pages {
		if err := st.Store.WritePage(page); err != nil {
			return err
		}
		slog.Debug("Page written", logfields.Path(page.PagePath))
	}
	st.Report.PagesWritten = len(st.pages)
	st.Recorder.PagesWritten(len(st.pages))
	return nil
}
