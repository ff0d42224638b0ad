package commands

import (
	"go.uber.org/zap"

	"github.com/tvaleev/gitstructure/internal/pathtree"
	"github.com/tvaleev/gitstructure/internal/tokenizer"
)

const warningTokenCountMessage = "failed to count tokens"

// CollectTokenCounts estimates token counts for every file node in the
// forest. Files that cannot be read or tokenized are skipped with a warning;
// token counting is advisory and never fails the run.
func CollectTokenCounts(forest *pathtree.Forest, counter tokenizer.Counter, logger *zap.Logger) map[string]int {
	tokenCounts := make(map[string]int)
	if counter == nil {
		return tokenCounts
	}
	forest.Walk(func(nodeHandle pathtree.Handle) {
		if forest.NodeKind(nodeHandle) != pathtree.KindFile {
			return
		}
		nodePath := forest.Path(nodeHandle)
		tokenCount, countError := tokenizer.CountFile(counter, nodePath)
		if countError != nil {
			if logger != nil {
				logger.Warn(warningTokenCountMessage, zap.String("path", nodePath), zap.Error(countError))
			}
			return
		}
		tokenCounts[nodePath] = tokenCount
	})
	return tokenCounts
}
