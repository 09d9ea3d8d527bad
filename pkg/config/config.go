package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/finfree/laplace-go/pkg/logger"
)

// ErrNotFound 表示在所有搜索路径里都没找到 config/{name}.yaml。
var ErrNotFound = errors.New("config file not found")

// File 是一份已加载、持续监听变更的配置文件。
type File struct {
	v   *viper.Viper
	log *zap.Logger

	mu       sync.Mutex
	out      any
	onReload []func()
}

// Load 读取 config/{name}.yaml 并反序列化到 out，之后监听文件热更新。
// defaults 里的键在文件和环境变量都没给时生效。
//
// 搜索路径依次为 $NAME_CONFIG_DIR、./config、当前目录。
// 环境变量覆盖用大写前缀，例如 LIVEWATCH_LAPLACE_API_KEY 覆盖 laplace.api_key。
func Load(name string, defaults map[string]any, out any) (*File, error) {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("yaml")
	if dir := os.Getenv(strings.ToUpper(name) + "_CONFIG_DIR"); dir != "" {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	v.SetEnvPrefix(strings.ToUpper(name))
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if errors.As(err, &nf) {
			return nil, fmt.Errorf("%w: %s.yaml", ErrNotFound, name)
		}
		return nil, fmt.Errorf("read %s config: %w", name, err)
	}
	if err := v.Unmarshal(out); err != nil {
		return nil, fmt.Errorf("unmarshal %s config: %w", name, err)
	}

	f := &File{
		v:   v,
		log: logger.New(name+".config", ""),
		out: out,
	}
	f.log.Info("config loaded", zap.String("file", v.ConfigFileUsed()))

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) { f.reload(e.Name) })
	return f, nil
}

// OnReload 注册热更新后的回调，在 out 重新填充之后调用。
func (f *File) OnReload(fn func()) {
	f.mu.Lock()
	f.onReload = append(f.onReload, fn)
	f.mu.Unlock()
}

// Viper 暴露底层 viper，少数场景要按 key 读。
func (f *File) Viper() *viper.Viper { return f.v }

func (f *File) reload(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.v.Unmarshal(f.out); err != nil {
		f.log.Error("config reload failed", zap.String("file", path), zap.Error(err))
		return
	}
	f.log.Info("config reloaded", zap.String("file", path))
	for _, fn := range f.onReload {
		fn()
	}
}
