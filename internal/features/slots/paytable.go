package slots

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Размер поля по умолчанию.
const (
	DefaultRows = 3
	DefaultCols = 3
)

// Config описывает автомат: набор символов, размер поля и число линий.
type Config struct {
	Symbols  []Symbol
	Rows     int
	Cols     int
	MaxLines int // 0 = Rows
}

// Встроенные наборы символов.
const (
	SetClassic = "classic"
	SetNeon    = "neon"
)

// ClassicConfig: классический буквенный автомат 3x3,
// веса 2/4/6/8, выплаты 5/4/3/2.
func ClassicConfig() Config {
	return Config{
		Symbols: []Symbol{
			{Name: "A", Weight: 2, Payout: decimal.NewFromInt(5)},
			{Name: "B", Weight: 4, Payout: decimal.NewFromInt(4)},
			{Name: "C", Weight: 6, Payout: decimal.NewFromInt(3)},
			{Name: "D", Weight: 8, Payout: decimal.NewFromInt(2)},
		},
		Rows: DefaultRows,
		Cols: DefaultCols,
	}
}

// NeonConfig: те же правила, но с эмодзи.
func NeonConfig() Config {
	return Config{
		Symbols: []Symbol{
			{Name: "💎", Weight: 2, Payout: decimal.NewFromInt(5)},
			{Name: "7️⃣", Weight: 4, Payout: decimal.NewFromInt(4)},
			{Name: "🍒", Weight: 6, Payout: decimal.NewFromInt(3)},
			{Name: "🍋", Weight: 8, Payout: decimal.NewFromInt(2)},
		},
		Rows: DefaultRows,
		Cols: DefaultCols,
	}
}

// PresetConfig возвращает встроенный набор по имени.
func PresetConfig(name string) (Config, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", SetClassic:
		return ClassicConfig(), nil
	case SetNeon:
		return NeonConfig(), nil
	default:
		return Config{}, fmt.Errorf("%w: unknown symbol set %q", ErrInvalidConfig, name)
	}
}

// rawConfig повторяет структуру YAML-файла таблицы выплат.
type rawConfig struct {
	Rows     int         `yaml:"rows"`
	Cols     int         `yaml:"cols"`
	MaxLines int         `yaml:"max_lines,omitempty"`
	Symbols  []rawSymbol `yaml:"symbols"`
}

type rawSymbol struct {
	Name   string  `yaml:"name"`
	Weight int     `yaml:"weight"`
	Payout float64 `yaml:"payout"`
}

// LoadConfig читает YAML-файл таблицы выплат. Без rows/cols поле 3x3.
//
// Формат файла:
//
//	rows: 3
//	cols: 3
//	max_lines: 3
//	symbols:
//	  - {name: A, weight: 2, payout: 5}
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("чтение таблицы выплат: %w", err)
	}
	return ParseConfig(b)
}

// ParseConfig разбирает и проверяет YAML таблицы выплат.
func ParseConfig(data []byte) (Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg := Config{Rows: raw.Rows, Cols: raw.Cols, MaxLines: raw.MaxLines}
	if cfg.Rows == 0 {
		cfg.Rows = DefaultRows
	}
	if cfg.Cols == 0 {
		cfg.Cols = DefaultCols
	}
	for _, s := range raw.Symbols {
		cfg.Symbols = append(cfg.Symbols, Symbol{
			Name:   s.Name,
			Weight: s.Weight,
			Payout: decimal.NewFromFloat(s.Payout),
		})
	}

	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MaxPoolSize: предел суммы весов. Пул каждого столбца собирается заново
// на каждом спине.
const MaxPoolSize = 10_000

// ValidateConfig проверяет все ограничения и сообщает обо всех нарушениях сразу.
// Пул меньше числа строк возвращается как ErrPoolExhausted.
//
// Проверки:
//   - rows и cols больше нуля
//   - max_lines от 0 до rows (0 = все строки)
//   - имена символов непустые и уникальные
//   - вес от 1 до MaxPoolSize, сумма весов не больше MaxPoolSize
//   - выплата больше нуля
func ValidateConfig(cfg Config) error {
	var errs []string

	if cfg.Rows <= 0 {
		errs = append(errs, "rows must be >= 1")
	}
	if cfg.Cols <= 0 {
		errs = append(errs, "cols must be >= 1")
	}
	if cfg.MaxLines < 0 || cfg.MaxLines > cfg.Rows {
		errs = append(errs, fmt.Sprintf("max_lines must be in [0, %d]", cfg.Rows))
	}
	if len(cfg.Symbols) == 0 {
		errs = append(errs, "at least one symbol is required")
	}

	seen := make(map[string]bool, len(cfg.Symbols))
	total := 0
	for i, s := range cfg.Symbols {
		if s.Name == "" {
			errs = append(errs, fmt.Sprintf("symbols[%d].name is empty", i))
		} else if seen[s.Name] {
			errs = append(errs, fmt.Sprintf("symbols[%d].name %q is duplicated", i, s.Name))
		}
		seen[s.Name] = true
		switch {
		case s.Weight <= 0:
			errs = append(errs, fmt.Sprintf("symbols[%d].weight must be > 0", i))
		case s.Weight > MaxPoolSize:
			errs = append(errs, fmt.Sprintf("symbols[%d].weight must be <= %d", i, MaxPoolSize))
		default:
			total += s.Weight
		}
		if !s.Payout.IsPositive() {
			errs = append(errs, fmt.Sprintf("symbols[%d].payout must be > 0", i))
		}
	}

	if total > MaxPoolSize {
		errs = append(errs, fmt.Sprintf("total weight %d exceeds %d", total, MaxPoolSize))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	if total < cfg.Rows {
		return fmt.Errorf("%w: pool of %d symbols cannot fill %d rows", ErrPoolExhausted, total, cfg.Rows)
	}
	return nil
}

// ResolveConfig берёт YAML-файл, если path задан, иначе встроенный набор.
func ResolveConfig(set, path string) (Config, error) {
	if path != "" {
		cfg, err := LoadConfig(path)
		if err != nil {
			return Config{}, fmt.Errorf("таблица выплат %s: %w", path, err)
		}
		return cfg, nil
	}
	return PresetConfig(set)
}
