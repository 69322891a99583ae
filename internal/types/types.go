package types

import (
	"time"
)

// Config represents the main configuration
type Config struct {
	Colony     ColonyConfig     `yaml:"colony" json:"colony"`
	Evaluator  EvaluatorConfig  `yaml:"evaluator" json:"evaluator"`
	Encoding   EncodingConfig   `yaml:"encoding" json:"encoding"`
	Controller ControllerConfig `yaml:"controller" json:"controller"`
}

// ColonyConfig represents population configuration
type ColonyConfig struct {
	Seed        int64 `yaml:"seed" json:"seed"`
	InitialSize int   `yaml:"initial_size" json:"initial_size"`
}

// EvaluatorConfig represents genome evaluation configuration
type EvaluatorConfig struct {
	ParallelWorkers int `yaml:"parallel_workers" json:"parallel_workers"`
	Timeout         int `yaml:"timeout" json:"timeout"`
}

// EncodingConfig represents the OneMax encoding configuration
type EncodingConfig struct {
	GenomeSize int   `yaml:"genome_size" json:"genome_size"`
	Min        int   `yaml:"min" json:"min"`
	Max        int   `yaml:"max" json:"max"`
	Seed       int64 `yaml:"seed" json:"seed"`
}

// ControllerConfig represents generation driver configuration
type ControllerConfig struct {
	MaxGenerations int     `yaml:"max_generations" json:"max_generations"`
	MutationRate   float64 `yaml:"mutation_rate" json:"mutation_rate"`
	Seed           int64   `yaml:"seed" json:"seed"`
	Verbose        bool    `yaml:"verbose" json:"verbose"`
	ReportInterval int     `yaml:"report_interval" json:"report_interval"`
}

// EvaluationStats tracks genome evaluation outcomes
type EvaluationStats struct {
	TotalEvaluations int64 `json:"total_evaluations"`
	FailedEvals      int64 `json:"failed_evals"`
	TimedOutEvals    int64 `json:"timed_out_evals"`
}

// GenerationStats summarises the population after one generation
type GenerationStats struct {
	Generation     int       `json:"generation"`
	PopulationSize int       `json:"population_size"`
	Replacement    bool      `json:"replacement"`
	BestID         string    `json:"best_id"`
	BestScore      float64   `json:"best_score"`
	MeanScore      float64   `json:"mean_score"`
	StdDevScore    float64   `json:"stddev_score"`
	Timestamp      time.Time `json:"timestamp"`
}
