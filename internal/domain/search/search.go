package search

import (
	"context"
	"errors"
	"path"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/puzpuzpuz/xsync"
	"github.com/quinty-io/backend/pkg/logger"
	"github.com/quinty-io/backend/pkg/xcontext"
)

const (
	bountyDoc = "bounty"
	questDoc  = "quest"
)

type BountyData struct {
	Title       string
	Description string
}

type QuestData struct {
	Title       string
	Description string
}

// Caller is the full-text index over bounty and quest titles/descriptions.
// Documents are keyed by on-chain id.
type Caller interface {
	IndexBounty(ctx context.Context, id int64, data BountyData) error
	IndexQuest(ctx context.Context, id int64, data QuestData) error
	SearchBounty(ctx context.Context, query string, offset, limit int) ([]int64, error)
	SearchQuest(ctx context.Context, query string, offset, limit int) ([]int64, error)
	Close()
}

type bleveIndex struct {
	logger   logger.Logger
	indexDir string
	indexes  *xsync.MapOf[string, bleve.Index]
}

func NewBleveIndex(ctx context.Context) *bleveIndex {
	return &bleveIndex{
		logger:   xcontext.Logger(ctx),
		indexDir: xcontext.Configs(ctx).Search.IndexDir,
		indexes:  xsync.NewMapOf[bleve.Index](),
	}
}

func (i *bleveIndex) IndexBounty(ctx context.Context, id int64, data BountyData) error {
	return i.index(bountyDoc, strconv.FormatInt(id, 10), data)
}

func (i *bleveIndex) IndexQuest(ctx context.Context, id int64, data QuestData) error {
	return i.index(questDoc, strconv.FormatInt(id, 10), data)
}

func (i *bleveIndex) SearchBounty(
	ctx context.Context, query string, offset, limit int,
) ([]int64, error) {
	return i.search(bountyDoc, query, offset, limit)
}

func (i *bleveIndex) SearchQuest(
	ctx context.Context, query string, offset, limit int,
) ([]int64, error) {
	return i.search(questDoc, query, offset, limit)
}

func (i *bleveIndex) index(document, id string, data any) error {
	index, err := i.getIndexByDocument(document)
	if err != nil {
		return err
	}

	record, err := index.Document(id)
	if err != nil {
		return err
	}

	// Delete if the record existed.
	if record != nil {
		if err := index.Delete(id); err != nil {
			return err
		}
	}

	return index.Index(id, data)
}

func (i *bleveIndex) search(document, query string, offset, limit int) ([]int64, error) {
	index, err := i.getIndexByDocument(document)
	if err != nil {
		return nil, err
	}

	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(query), limit, offset, false)
	searchResults, err := index.Search(req)
	if err != nil {
		return nil, err
	}

	ids := []int64{}
	for _, match := range searchResults.Hits {
		id, err := strconv.ParseInt(match.ID, 10, 64)
		if err != nil {
			continue
		}

		ids = append(ids, id)
	}

	return ids, nil
}

func (i *bleveIndex) Close() {
	i.logger.Infof("Closing all indexers...")

	i.indexes.Range(func(document string, index bleve.Index) bool {
		if err := index.Close(); err != nil {
			i.logger.Errorf("Cannot close indexer %s: %v", document, err)
		}

		return true
	})

	i.logger.Infof("Closing all indexers...done")
}

func (i *bleveIndex) getIndexByDocument(document string) (bleve.Index, error) {
	index, ok := i.indexes.Load(document)
	if !ok {
		i.logger.Infof("A new document index is added: %s", document)

		var err error
		indexPath := path.Join(i.indexDir, document)
		index, err = bleve.New(indexPath, bleve.NewIndexMapping())
		if err != nil {
			if !errors.Is(err, bleve.ErrorIndexPathExists) {
				return nil, err
			}

			index, err = bleve.Open(indexPath)
			if err != nil {
				return nil, err
			}
		}

		i.indexes.Store(document, index)
	}

	return index, nil
}
