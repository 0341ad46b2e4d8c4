package xconf

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Format 配置格式
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Loader 从文件或字节加载的配置快照。
// 每次 Reload 整体替换快照，Set 写入的覆盖项在重载后重新生效。
type Loader struct {
	path   string
	format Format
	delim  string
	tag    string

	reloadMu  sync.Mutex
	current   atomic.Pointer[koanf.Koanf]
	overrides map[string]any
}

// Option Loader 配置项
type Option func(*Loader)

// WithDelim 键分隔符，默认 "."
func WithDelim(delim string) Option {
	return func(l *Loader) {
		if delim != "" {
			l.delim = delim
		}
	}
}

// WithTag Unmarshal 使用的结构体标签，默认 "koanf"
func WithTag(tag string) Option {
	return func(l *Loader) {
		if tag != "" {
			l.tag = tag
		}
	}
}

func newLoader(path string, format Format, opts []Option) *Loader {
	l := &Loader{path: path, format: format, delim: ".", tag: "koanf"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load 从文件加载，格式由扩展名决定（.yaml/.yml/.json）。
func Load(path string, opts ...Option) (*Loader, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptyPath
	}
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	l := newLoader(path, format, opts)
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Parse 从字节加载，空数据得到空配置。这样得到的 Loader 不能 Reload 或 Watch。
func Parse(data []byte, format Format, opts ...Option) (*Loader, error) {
	l := newLoader("", format, opts)
	k, err := l.parse(data)
	if err != nil {
		return nil, err
	}
	l.current.Store(k)
	return l, nil
}

// Reload 重新读取文件。失败时保留原快照。
func (l *Loader) Reload() error {
	if l.path == "" {
		return ErrNotReloadable
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	l.reloadMu.Lock()
	defer l.reloadMu.Unlock()
	k, err := l.parse(data)
	if err != nil {
		return err
	}
	for key, v := range l.overrides {
		if err := k.Set(key, v); err != nil {
			return fmt.Errorf("%w: override %s: %w", ErrParseFailed, key, err)
		}
	}
	l.current.Store(k)
	return nil
}

func (l *Loader) parse(data []byte) (*koanf.Koanf, error) {
	var parser koanf.Parser
	switch l.format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, l.format)
	}
	k := koanf.New(l.delim)
	if len(data) == 0 {
		return k, nil
	}
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	return k, nil
}

// Set 覆盖 key 的值，例如命令行参数覆盖文件中的配置。
func (l *Loader) Set(key string, value any) error {
	l.reloadMu.Lock()
	defer l.reloadMu.Unlock()

	// 写时复制，已取得的快照不受影响
	k := l.current.Load().Copy()
	if err := k.Set(key, value); err != nil {
		return fmt.Errorf("xconf: set %s: %w", key, err)
	}
	if l.overrides == nil {
		l.overrides = make(map[string]any)
	}
	l.overrides[key] = value
	l.current.Store(k)
	return nil
}

// Snapshot 当前快照，Reload 之后不会变化。
func (l *Loader) Snapshot() *koanf.Koanf {
	return l.current.Load()
}

// Unmarshal 把 path 下的配置解到 target，path 为空时解整个配置。
// 字符串形式的时长（"200ms"）与逗号分隔的列表会按目标字段类型转换。
func (l *Loader) Unmarshal(path string, target any) error {
	if err := l.Snapshot().UnmarshalWithConf(path, target, koanf.UnmarshalConf{Tag: l.tag}); err != nil {
		return fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
	}
	return nil
}

// Exists path 是否存在
func (l *Loader) Exists(path string) bool {
	return l.Snapshot().Exists(path)
}

// Overrides Set 写入的覆盖项
func (l *Loader) Overrides() map[string]any {
	l.reloadMu.Lock()
	defer l.reloadMu.Unlock()
	return maps.Clone(l.overrides)
}

// Path 文件路径，Parse 得到的 Loader 为空。
func (l *Loader) Path() string { return l.path }

// Format 配置格式
func (l *Loader) Format() Format { return l.format }

// FormatOf 按扩展名判断格式
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
	}
}
