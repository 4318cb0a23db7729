package mocks

//go:generate mockgen -destination=./mock_bar_source.go -package=mocks github.com/omupade20/prop8/internal/strategy BarSource
//go:generate mockgen -destination=./mock_alert_gate.go -package=mocks github.com/omupade20/prop8/internal/strategy AlertGate
//go:generate mockgen -destination=./mock_regime_classifier.go -package=mocks github.com/omupade20/prop8/internal/strategy RegimeClassifier
//go:generate mockgen -destination=./mock_bias_estimator.go -package=mocks github.com/omupade20/prop8/internal/strategy BiasEstimator
//go:generate mockgen -destination=./mock_structure_detector.go -package=mocks github.com/omupade20/prop8/internal/strategy StructureDetector
//go:generate mockgen -destination=./mock_decision_policy.go -package=mocks github.com/omupade20/prop8/internal/strategy DecisionPolicy
//go:generate mockgen -destination=./mock_decision_handler.go -package=mocks github.com/omupade20/prop8/internal/strategy DecisionHandler
