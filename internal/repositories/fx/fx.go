package fx

import (
	"github.com/orgball2608/douyin-parser/internal/repositories/resolution"
	"go.uber.org/fx"
)

var Module = fx.Options(
	resolution.Module,
)
