package handler

import (
	"fmt"

	"smalipatch/internal/cli/output"
	"smalipatch/internal/core"
	"smalipatch/internal/core/domain"
)

type InitializeCommandHandler struct {
	configRepository core.ConfigRepository
}

func ProvideInitializeCommandHandler(
	configRepository core.ConfigRepository,
) InitializeCommandHandler {
	return InitializeCommandHandler{
		configRepository: configRepository,
	}
}

// Handle writes the default configuration unless one already exists.
func (h *InitializeCommandHandler) Handle() error {
	configExists, err := h.configRepository.ConfigExists()
	if err != nil {
		return err
	}
	if configExists {
		return fmt.Errorf("configuration already exists, edit ~/.smalipatch.yaml instead")
	}

	config := domain.CreateDefaultConfig()
	if err := h.configRepository.SaveConfig(&config); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	output.PrintSuccess("Wrote default configuration to ~/.smalipatch.yaml")
	return nil
}
